package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/log"
	"github.com/silinternational/prudence-api/models"
	"github.com/silinternational/prudence-api/rating"
)

func riskSubmitted(e events.Event) {
	if e.Kind != domain.EventApiRiskSubmitted {
		return
	}

	defer panicRecover(e.Kind)

	var risk models.Risk
	if err := findObject(e.Payload, &risk, e.Kind); err != nil {
		return
	}

	level := rating.ClassifyRating(risk.ResidualProbability * risk.ResidualImpact)
	log.Infof("risk submitted: %q residual level %s", risk.Description, level)

	if level == rating.LevelCritical {
		log.Warnf("critical risk submitted: %q (%s)", risk.Description, risk.ID)
	}
}

func assessmentAccepted(e events.Event) {
	if e.Kind != domain.EventApiAssessmentAccepted {
		return
	}

	defer panicRecover(e.Kind)

	logAssessmentOutcome(e)
}

func assessmentRejected(e events.Event) {
	if e.Kind != domain.EventApiAssessmentRejected {
		return
	}

	defer panicRecover(e.Kind)

	logAssessmentOutcome(e)
}

func logAssessmentOutcome(e events.Event) {
	var assessment models.RiskAssessment
	if err := findObject(e.Payload, &assessment, e.Kind); err != nil {
		return
	}

	if err := assessment.LoadRisk(models.DB); err != nil {
		log.Errorf("Failed to load risk in %s, %s", e.Kind, err)
		return
	}

	log.Infof("assessment for risk %q resolved as %s", assessment.Risk.Description, assessment.Status)
}
