package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
)

type FixturesConfig struct {
	NumberOfRisks   int
	ControlsPerRisk int
	NumberOfUsers   int
}

// Fixtures hold slices of model objects created for test fixtures
type Fixtures struct {
	Controls
	Risks
	RiskAssessments
	RiskTypes
	UserAccessTokens
	Users
}

// TestBuffaloContext is a buffalo context used in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[interface{}]interface{}
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key interface{}) interface{} {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val interface{}) {
	b.params[key] = val
}

// CreateTestContext sets the domain.ContextKeyCurrentUser to the user param in the TestBuffaloContext
func CreateTestContext(user User) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[interface{}]interface{}{},
	}
	ctx.Set(domain.ContextKeyCurrentUser, user)
	return ctx
}

// CreateUserFixtures generates any number of user records for testing. The
// access token for each user is the same as the user's Email, and the
// password is the user's Username. Users are created with role L1.
func CreateUserFixtures(tx *pop.Connection, n int) Fixtures {
	unique := domain.GetUUID().String()

	users := make(Users, n)
	accessTokenFixtures := make(UserAccessTokens, n)
	for i := range users {
		iStr := strconv.Itoa(i)
		users[i].Username = fmt.Sprintf("user%d_%s", i, unique)
		users[i].Email = users[i].Username + "@example.com"
		users[i].FirstName = "first" + iStr
		users[i].LastName = "last" + iStr
		users[i].Role = api.UserRoleL1
		users[i].IsActive = true
		if err := users[i].SetPassword(users[i].Username); err != nil {
			panic("failed to set fixture password, " + err.Error())
		}
		MustCreate(tx, &users[i])

		accessTokenFixtures[i].UserID = users[i].ID
		accessTokenFixtures[i].TokenHash = HashAccessToken(users[i].Email)
		accessTokenFixtures[i].ExpiresAt = time.Now().UTC().Add(time.Minute * 60)
		accessTokenFixtures[i].LastUsedAt = nulls.NewTime(time.Now())
		MustCreate(tx, &accessTokenFixtures[i])
	}

	return Fixtures{
		Users:            users,
		UserAccessTokens: accessTokenFixtures,
	}
}

// CreateUserFixturesWithRole makes one user per given role
func CreateUserFixturesWithRole(tx *pop.Connection, roles ...api.UserRole) Users {
	users := make(Users, len(roles))
	for i, role := range roles {
		users[i] = CreateUserFixtures(tx, 1).Users[0]
		users[i].Role = role
		if err := users[i].Save(tx); err != nil {
			panic("failed to set fixture role, " + err.Error())
		}
	}
	return users
}

// CreateControlFixtures generates any number of control records for testing,
// all owned by the same user.
func CreateControlFixtures(tx *pop.Connection, n int, ownerID uuid.UUID) Fixtures {
	controls := make(Controls, n)
	for i := range controls {
		controls[i] = Control{
			Name:          "control " + randStr(8),
			Description:   "control fixture " + strconv.Itoa(i),
			Effectiveness: api.ControlPartiallyEffective,
			OwnerID:       ownerID,
		}
		MustCreate(tx, &controls[i])
	}

	return Fixtures{
		Controls: controls,
	}
}

// CreateRiskFixtures generates risk records with owners and linked controls.
// Uses FixturesConfig fields: NumberOfRisks, ControlsPerRisk, NumberOfUsers.
func CreateRiskFixtures(tx *pop.Connection, config FixturesConfig) Fixtures {
	if config.NumberOfUsers < 1 {
		config.NumberOfUsers = 1
	}
	fixtures := CreateUserFixtures(tx, config.NumberOfUsers)
	users := fixtures.Users

	risks := make(Risks, config.NumberOfRisks)
	var controls Controls
	for i := range risks {
		owner := users[i%len(users)]
		risks[i] = Risk{
			Description:         "risk fixture " + randStr(8),
			InherentProbability: 1 + i%5,
			InherentImpact:      1 + i%5,
			ResidualProbability: 1 + i%5,
			ResidualImpact:      1 + i%5,
			OwnerID:             owner.ID,
		}
		MustCreate(tx, &risks[i])

		f := CreateControlFixtures(tx, config.ControlsPerRisk, owner.ID)
		for _, control := range f.Controls {
			link := RiskControl{RiskID: risks[i].ID, ControlID: control.ID}
			MustCreate(tx, &link)
		}
		controls = append(controls, f.Controls...)
	}

	fixtures.Risks = risks
	fixtures.Controls = controls
	return fixtures
}

// CreateAssessmentFixtures generates one assessment per risk, assessed by
// the given user, in the given state.
func CreateAssessmentFixtures(tx *pop.Connection, risks Risks, assessor User, status api.AssessmentStatus) RiskAssessments {
	assessments := make(RiskAssessments, len(risks))
	for i, risk := range risks {
		assessments[i] = RiskAssessment{
			RiskID:     risk.ID,
			AssessorID: assessor.ID,
			Status:     status,
		}
		if status == api.AssessmentStatusRejected {
			assessments[i].Comments = nulls.NewString("needs rework")
		}
		if status != api.AssessmentStatusPending {
			assessments[i].AssessedDate = nulls.NewTime(time.Now().UTC())
		}
		MustCreate(tx, &assessments[i])
	}
	return assessments
}

// CreateRiskTypeFixtures generates any number of risk type records
func CreateRiskTypeFixtures(tx *pop.Connection, n int) Fixtures {
	riskTypes := make(RiskTypes, n)
	for i := range riskTypes {
		riskTypes[i] = RiskType{
			Name:        "type " + randStr(8),
			Description: nulls.NewString("risk type fixture " + strconv.Itoa(i)),
		}
		MustCreate(tx, &riskTypes[i])
	}

	return Fixtures{
		RiskTypes: riskTypes,
	}
}

// MustCreate saves a record to the database with validation. Panics if any error occurs.
func MustCreate(tx *pop.Connection, f interface{}) {
	// Use `create` instead of `tx.Create` to check validation rules
	err := create(tx, f)
	if err != nil {
		panic(fmt.Sprintf("error creating %T fixture, %s", f, err))
	}
}

func randStr(n int) string {
	return domain.RandomString(n, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
}

func DestroyAll() {
	// delete all RiskAssessments
	var assessments RiskAssessments
	destroyTable(&assessments)

	// delete all Risks and their control links
	var risks Risks
	destroyTable(&risks)

	// delete all Controls
	var controls Controls
	destroyTable(&controls)

	// delete all RiskTypes
	var riskTypes RiskTypes
	destroyTable(&riskTypes)

	// delete all Users and UserAccessTokens
	var users Users
	destroyTable(&users)
}

func destroyTable(i interface{}) {
	if err := DB.All(i); err != nil {
		panic(err.Error())
	}
	if err := DB.Destroy(i); err != nil {
		panic(err.Error())
	}
}
