package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryForbidden    = ErrorCategory("Forbidden")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorCreateFailure         = ErrorKey("ErrorCreateFailure")
	ErrorDestroyFailure        = ErrorKey("ErrorDestroyFailure")
	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorForeignKeyViolation   = ErrorKey("ErrorForeignKeyViolation")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorNoRows                = ErrorKey("ErrorNoRows")
	ErrorNotAuthorized         = ErrorKey("ErrorNotAuthorized")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorSaveFailure           = ErrorKey("ErrorSaveFailure")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorUpdateFailure         = ErrorKey("ErrorUpdateFailure")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// Authentication
	ErrorCreatingAccessToken = ErrorKey("ErrorCreatingAccessToken")
	ErrorDeletingAccessToken = ErrorKey("ErrorDeletingAccessToken")
	ErrorFindingAccessToken  = ErrorKey("ErrorFindingAccessToken")
	ErrorInvalidCredentials  = ErrorKey("ErrorInvalidCredentials")
	ErrorUserInactive        = ErrorKey("ErrorUserInactive")
	ErrorUsernameTaken       = ErrorKey("ErrorUsernameTaken")

	// Authorization
	ErrorInvalidResourceID = ErrorKey("ErrorInvalidResourceID")
	ErrorResourceNotFound  = ErrorKey("ErrorResourceNotFound")

	// Risk
	ErrorInvalidRatingInput  = ErrorKey("ErrorInvalidRatingInput")
	ErrorRiskFromContext     = ErrorKey("ErrorRiskFromContext")
	ErrorRiskUnknownControl  = ErrorKey("ErrorRiskUnknownControl")
	ErrorRiskUnknownRiskType = ErrorKey("ErrorRiskUnknownRiskType")

	// Control
	ErrorControlEffectiveness = ErrorKey("ErrorControlEffectiveness")
	ErrorControlFromContext   = ErrorKey("ErrorControlFromContext")

	// RiskAssessment
	ErrorAssessmentComment     = ErrorKey("ErrorAssessmentComment")
	ErrorAssessmentFromContext = ErrorKey("ErrorAssessmentFromContext")
	ErrorAssessmentStatus      = ErrorKey("ErrorAssessmentStatus")
)
