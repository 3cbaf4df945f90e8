package models

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
)

var ValidAssessmentStatuses = map[api.AssessmentStatus]struct{}{
	api.AssessmentStatusPending:  {},
	api.AssessmentStatusAccepted: {},
	api.AssessmentStatusRejected: {},
}

// assessmentStatusTransitions maps a status to the statuses it may move to.
// Accepted and Rejected are terminal.
var assessmentStatusTransitions = map[api.AssessmentStatus][]api.AssessmentStatus{
	api.AssessmentStatusPending:  {api.AssessmentStatusAccepted, api.AssessmentStatusRejected},
	api.AssessmentStatusAccepted: {},
	api.AssessmentStatusRejected: {},
}

func isAssessmentTransitionValid(status1, status2 api.AssessmentStatus) bool {
	targets, ok := assessmentStatusTransitions[status1]
	if !ok {
		return false
	}
	for _, target := range targets {
		if status2 == target {
			return true
		}
	}
	return false
}

type RiskAssessments []RiskAssessment

// RiskAssessment is the sign-off record opened when an L1 user submits a
// risk with a named assessor. It is resolved exactly once.
type RiskAssessment struct {
	ID           uuid.UUID            `db:"id"`
	RiskID       uuid.UUID            `db:"risk_id" validate:"required"`
	AssessorID   uuid.UUID            `db:"assessor_id" validate:"required"`
	Status       api.AssessmentStatus `db:"status" validate:"assessmentStatus"`
	Comments     nulls.String         `db:"comments"`
	AssessedDate nulls.Time           `db:"assessed_date"`
	CreatedAt    time.Time            `db:"created_at"`
	UpdatedAt    time.Time            `db:"updated_at"`

	Risk     Risk `belongs_to:"risks" db:"-"`
	Assessor User `belongs_to:"users" db:"-"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (a *RiskAssessment) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(a), nil
}

// Create stores the RiskAssessment data as a new record in the database.
func (a *RiskAssessment) Create(tx *pop.Connection) error {
	if a.Status == "" {
		a.Status = api.AssessmentStatusPending
	}
	return create(tx, a)
}

// Update writes the RiskAssessment data to an existing database record.
func (a *RiskAssessment) Update(tx *pop.Connection) error {
	return update(tx, a)
}

func (a *RiskAssessment) GetID() uuid.UUID {
	return a.ID
}

func (a *RiskAssessment) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, a, id)
}

// IsActorAllowedTo - assessments are created and deleted by the system, not
// through the API. Resolution is reserved to the approver role.
func (a *RiskAssessment) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, r *http.Request) bool {
	switch p {
	case PermissionView, PermissionList:
		return true
	case PermissionUpdate:
		return CanAssessRisk(actor.Role)
	default:
		return false
	}
}

// Resolve moves the assessment out of Pending. Only an L2 user may resolve,
// a rejection requires a comment, and a resolved assessment is frozen.
func (a *RiskAssessment) Resolve(tx *pop.Connection, input api.RiskAssessmentUpdateInput, actor User) error {
	if !CanAssessRisk(actor.Role) {
		return api.NewAppError(
			fmt.Errorf("user %s may not resolve assessments", actor.ID),
			api.ErrorNotAuthorized,
			api.CategoryForbidden,
		)
	}

	if _, ok := ValidAssessmentStatuses[input.Status]; !ok {
		return api.NewAppError(
			fmt.Errorf("invalid assessment status: %s", input.Status),
			api.ErrorValidation,
			api.CategoryUser,
		)
	}

	if !isAssessmentTransitionValid(a.Status, input.Status) {
		return api.NewAppError(
			fmt.Errorf("assessment status transition not allowed: %s to %s", a.Status, input.Status),
			api.ErrorAssessmentStatus,
			api.CategoryUser,
		)
	}

	if input.Status == api.AssessmentStatusRejected && strings.TrimSpace(input.Comments) == "" {
		return api.NewAppError(
			fmt.Errorf("rejecting an assessment requires a comment"),
			api.ErrorAssessmentComment,
			api.CategoryUser,
		)
	}

	a.Status = input.Status
	a.Comments = nulls.String{}
	if input.Comments != "" {
		a.Comments = nulls.NewString(input.Comments)
	}
	now := time.Now().UTC()
	a.AssessedDate = nulls.NewTime(now)

	// struct validation inside Update backstops the comment requirement
	if err := a.Update(tx); err != nil {
		return err
	}

	if err := a.stampRisk(tx, now); err != nil {
		return err
	}

	eventKind := domain.EventApiAssessmentAccepted
	if a.Status == api.AssessmentStatusRejected {
		eventKind = domain.EventApiAssessmentRejected
	}
	emitEvent(events.Event{
		Kind:    eventKind,
		Message: "assessment resolved by " + actor.Username,
		Payload: events.Payload{domain.EventPayloadID: a.ID},
	})

	return nil
}

// stampRisk records the resolution time on the assessed risk
func (a *RiskAssessment) stampRisk(tx *pop.Connection, t time.Time) error {
	if err := a.LoadRisk(tx); err != nil {
		return err
	}
	a.Risk.LastAssessed = nulls.NewTime(t)
	return a.Risk.Update(tx)
}

func (a *RiskAssessment) LoadRisk(tx *pop.Connection) error {
	if a.Risk.ID.Version() == 0 {
		if err := tx.Load(a, "Risk"); err != nil {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}
	}
	return nil
}

func (a *RiskAssessment) LoadAssessor(tx *pop.Connection) error {
	if a.Assessor.ID.Version() == 0 {
		if err := tx.Load(a, "Assessor"); err != nil {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}
	}
	return nil
}

// List loads a page of assessments scoped to the actor: an L2 user sees
// their own queue, an L1 user sees assessments on risks they own, and a
// read-only observer sees everything.
func (a *RiskAssessments) List(tx *pop.Connection, query api.QueryParams, actor User) (int, int, error) {
	q := tx.Q().Order("created_at desc")

	switch actor.Role {
	case api.UserRoleL2:
		q.Where("assessor_id = ?", actor.ID)
	case api.UserRoleL1:
		q.Where("risk_id IN (SELECT id FROM risks WHERE owner_id = ?)", actor.ID)
	}

	if status := query.Filter(api.FilterStatus); status != "" {
		q.Where("status = ?", status)
	}
	if assessor := query.Filter(api.FilterAssessor); assessor != "" {
		q.Where("assessor_id = ?", assessor)
	}

	q.Paginate(query.Page(), query.PageSize())
	if err := q.All(a); err != nil {
		return 0, 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return q.Paginator.TotalEntriesSize, q.Paginator.TotalPages, nil
}

// CountPendingAssessments returns the number of unresolved assessments in the
// given assessor's queue. Users who are not named as assessor on anything get
// a zero count.
func CountPendingAssessments(tx *pop.Connection, assessorID uuid.UUID) (int, error) {
	n, err := tx.Where("assessor_id = ? AND status = ?", assessorID, api.AssessmentStatusPending).
		Count(&RiskAssessment{})
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return n, nil
}

func ConvertRiskAssessment(tx *pop.Connection, a RiskAssessment) (api.RiskAssessment, error) {
	if err := a.LoadRisk(tx); err != nil {
		return api.RiskAssessment{}, err
	}
	if err := a.LoadAssessor(tx); err != nil {
		return api.RiskAssessment{}, err
	}

	risk, err := ConvertRisk(tx, a.Risk)
	if err != nil {
		return api.RiskAssessment{}, err
	}

	return api.RiskAssessment{
		ID:           a.ID,
		Risk:         risk,
		Assessor:     ConvertUser(a.Assessor),
		Status:       a.Status,
		Comments:     a.Comments.String,
		AssessedDate: convertTimeToAPI(a.AssessedDate),
		CreatedAt:    a.CreatedAt,
	}, nil
}

func ConvertRiskAssessments(tx *pop.Connection, as RiskAssessments) (api.RiskAssessments, error) {
	assessments := make(api.RiskAssessments, len(as))
	for i, a := range as {
		var err error
		if assessments[i], err = ConvertRiskAssessment(tx, a); err != nil {
			return nil, err
		}
	}
	return assessments, nil
}
