package grifts

import (
	"fmt"

	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/models"
)

var _ = grift.Namespace("db", func() {
	grift.Desc("seed", "Seeds a database")
	_ = grift.Add("seed", func(c *grift.Context) error {
		countUsers := models.Users{}
		count, err := models.DB.Count(countUsers)
		if err != nil {
			return err
		}

		if count > 1 {
			fmt.Printf("\nINFO: It appears that the grifts have already been run, "+
				"since there are already %v users.\n", count)
			return nil
		}

		return models.DB.Transaction(func(tx *pop.Connection) error {
			fixUsers, err := createUserFixtures(tx)
			if err != nil {
				return err
			}

			fixTypes, err := createRiskTypeFixtures(tx)
			if err != nil {
				return err
			}

			fixControls, err := createControlFixtures(tx, fixUsers)
			if err != nil {
				return err
			}

			return createRiskFixtures(tx, fixUsers, fixTypes, fixControls)
		})
	})
})

func createUserFixtures(tx *pop.Connection) ([]*models.User, error) {
	users := []*models.User{
		{
			Username:  "rita.reporter",
			Email:     "rita.reporter@example.org",
			FirstName: "Rita",
			LastName:  "Reporter",
			Role:      api.UserRoleL1,
		},
		{
			Username:  "manny.manager",
			Email:     "manny.manager@example.org",
			FirstName: "Manny",
			LastName:  "Manager",
			Role:      api.UserRoleL2,
		},
		{
			Username:  "olive.observer",
			Email:     "olive.observer@example.org",
			FirstName: "Olive",
			LastName:  "Observer",
			Role:      api.UserRoleL3,
		},
	}

	for _, user := range users {
		if err := user.SetPassword("changeme"); err != nil {
			return nil, fmt.Errorf("error setting password for %s: %w", user.Username, err)
		}
		if err := user.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating user %s: %w", user.Username, err)
		}
		fmt.Printf("created user %s (%s)\n", user.Username, user.Role)
	}

	return users, nil
}

func createRiskTypeFixtures(tx *pop.Connection) ([]*models.RiskType, error) {
	riskTypes := []*models.RiskType{
		{
			Name:        "Operational",
			Description: nulls.NewString("Failures of people, processes or systems"),
		},
		{
			Name:        "Financial",
			Description: nulls.NewString("Exposure to monetary loss"),
		},
		{
			Name:        "Compliance",
			Description: nulls.NewString("Regulatory and contractual obligations"),
		},
		{
			Name:        "Strategic",
			Description: nulls.NewString("Threats to long-term objectives"),
		},
	}

	for _, riskType := range riskTypes {
		if err := riskType.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating risk type %s: %w", riskType.Name, err)
		}
	}

	return riskTypes, nil
}

func createControlFixtures(tx *pop.Connection, users []*models.User) ([]*models.Control, error) {
	manager := users[1]

	controls := []*models.Control{
		{
			Name:          "Quarterly access review",
			Description:   "Review and revoke stale account access every quarter",
			Effectiveness: api.ControlPartiallyEffective,
			OwnerID:       manager.ID,
		},
		{
			Name:          "Offsite backups",
			Description:   "Nightly encrypted backups replicated to a second region",
			Effectiveness: api.ControlFullyEffective,
			OwnerID:       manager.ID,
		},
		{
			Name:          "Vendor due diligence",
			Description:   "Security questionnaire before onboarding any vendor",
			Effectiveness: api.ControlNotEffective,
			OwnerID:       manager.ID,
		},
	}

	for _, control := range controls {
		if err := control.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating control %s: %w", control.Name, err)
		}
	}

	return controls, nil
}

func createRiskFixtures(tx *pop.Connection, users []*models.User, riskTypes []*models.RiskType, controls []*models.Control) error {
	reporter, manager := users[0], users[1]

	risks := []struct {
		risk     models.Risk
		controls []*models.Control
	}{
		{
			risk: models.Risk{
				Description:         "Loss of production data from a failed migration",
				InherentProbability: 4,
				InherentImpact:      5,
				ResidualProbability: 2,
				ResidualImpact:      3,
				OwnerID:             reporter.ID,
				AssessorID:          nulls.NewUUID(manager.ID),
				RiskTypeID:          nulls.NewUUID(riskTypes[0].ID),
			},
			controls: controls[:2],
		},
		{
			risk: models.Risk{
				Description:         "Unbudgeted license cost increase at renewal",
				InherentProbability: 3,
				InherentImpact:      3,
				ResidualProbability: 2,
				ResidualImpact:      2,
				OwnerID:             manager.ID,
				RiskTypeID:          nulls.NewUUID(riskTypes[1].ID),
			},
			controls: controls[2:],
		},
	}

	for i := range risks {
		risk := &risks[i].risk
		if err := risk.Create(tx); err != nil {
			return fmt.Errorf("error creating risk %q: %w", risk.Description, err)
		}
		for _, control := range risks[i].controls {
			link := models.RiskControl{RiskID: risk.ID, ControlID: control.ID}
			if err := tx.Create(&link); err != nil {
				return fmt.Errorf("error linking control %s to risk %q: %w", control.Name, risk.Description, err)
			}
		}
	}

	assessment := models.RiskAssessment{
		RiskID:     risks[0].risk.ID,
		AssessorID: manager.ID,
	}
	if err := assessment.Create(tx); err != nil {
		return fmt.Errorf("error creating assessment: %w", err)
	}

	fmt.Printf("created %d risks with a pending assessment for %s\n", len(risks), manager.Username)
	return nil
}
