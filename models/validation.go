package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/rating"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"assessmentStatus":     validateAssessmentStatus,
	"controlEffectiveness": validateControlEffectiveness,
	"riskScale":            validateRiskScale,
	"userRole":             validateUserRole,
}

func validateModel(m interface{}) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	msg := strings.Join(msgs, " |")
	return msg
}

func validateUserRole(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.UserRole); ok {
		_, valid := ValidUserRoles[value]
		return valid
	}
	return false
}

func validateAssessmentStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.AssessmentStatus); ok {
		_, valid := ValidAssessmentStatuses[value]
		return valid
	}
	return false
}

func validateControlEffectiveness(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ControlEffectiveness); ok {
		_, valid := ValidControlEffectiveness[value]
		return valid
	}
	return false
}

// validateRiskScale limits probability and impact columns to whole numbers 1-5
func validateRiskScale(field validator.FieldLevel) bool {
	n := int(field.Field().Int())
	return n >= rating.ScaleMin && n <= rating.ScaleMax
}

func riskAssessmentStructLevelValidation(sl validator.StructLevel) {
	assessment, ok := sl.Current().Interface().(RiskAssessment)
	if !ok {
		panic("riskAssessmentStructLevelValidation registered to a type other than RiskAssessment")
	}

	// a rejection must carry an explanation for the submitter
	if assessment.Status == api.AssessmentStatusRejected &&
		(!assessment.Comments.Valid || strings.TrimSpace(assessment.Comments.String) == "") {
		sl.ReportError(assessment.Comments, "comments", "Comments", "comments_required", "")
	}
}
