package models

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/rating"
)

type Risks []Risk

// Risk carries two independent probability/impact pairs. Ratings and risk
// levels are derived from them on the way out, never stored.
type Risk struct {
	ID                  uuid.UUID  `db:"id"`
	Description         string     `db:"description" validate:"required"`
	InherentProbability int        `db:"inherent_probability" validate:"riskScale"`
	InherentImpact      int        `db:"inherent_impact" validate:"riskScale"`
	ResidualProbability int        `db:"residual_probability" validate:"riskScale"`
	ResidualImpact      int        `db:"residual_impact" validate:"riskScale"`
	OwnerID             uuid.UUID  `db:"owner_id" validate:"required"`
	AssessorID          nulls.UUID `db:"assessor_id"`
	RiskTypeID          nulls.UUID `db:"risk_type_id"`
	LastAssessed        nulls.Time `db:"last_assessed"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`

	Owner    User     `belongs_to:"users" db:"-"`
	Controls Controls `many_to_many:"risk_controls" db:"-"`
}

// RiskControl is a row in the join table between risks and controls
type RiskControl struct {
	ID        uuid.UUID `db:"id"`
	RiskID    uuid.UUID `db:"risk_id"`
	ControlID uuid.UUID `db:"control_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (r *Risk) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(r), nil
}

// Create stores the Risk data as a new record in the database.
func (r *Risk) Create(tx *pop.Connection) error {
	return create(tx, r)
}

// Update writes the Risk data to an existing database record.
func (r *Risk) Update(tx *pop.Connection) error {
	return update(tx, r)
}

func (r *Risk) Destroy(tx *pop.Connection) error {
	return destroy(tx, r)
}

func (r *Risk) GetID() uuid.UUID {
	return r.ID
}

func (r *Risk) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, r, id)
}

// IsActorAllowedTo consults the role permission policy. Every authenticated
// role can read risks, writes depend on role and ownership.
func (r *Risk) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, req *http.Request) bool {
	switch p {
	case PermissionView, PermissionList:
		return true
	case PermissionCreate:
		return CanCreateRisk(actor.Role)
	case PermissionUpdate:
		return CanEditRisk(actor.Role, r.OwnerID, actor.ID)
	case PermissionDelete:
		return CanDeleteRisk(actor.Role)
	default:
		return false
	}
}

// NewRiskFromAPI builds a Risk from create input. Probability and impact
// arrive as JSON numbers and must be whole numbers on the 1-5 scale.
func NewRiskFromAPI(input api.RiskCreateInput, actor User) (Risk, error) {
	r := Risk{
		Description: input.Description,
		OwnerID:     actor.ID,
		AssessorID:  input.AssessorID,
		RiskTypeID:  input.RiskTypeID,
	}

	scales := map[*int]float64{
		&r.InherentProbability: input.InherentProbability,
		&r.InherentImpact:      input.InherentImpact,
		&r.ResidualProbability: input.ResidualProbability,
		&r.ResidualImpact:      input.ResidualImpact,
	}
	for field, value := range scales {
		n, err := rating.ParseScale(value)
		if err != nil {
			return Risk{}, api.NewAppError(err, api.ErrorInvalidRatingInput, api.CategoryUser)
		}
		*field = n
	}

	return r, nil
}

// CreateForUser stores a new risk with its control links, and opens a
// Pending assessment when an L1 submitter has named an assessor.
func (r *Risk) CreateForUser(tx *pop.Connection, controlIDs []uuid.UUID, actor User) error {
	if r.RiskTypeID.Valid {
		var riskType RiskType
		if err := riskType.FindByID(tx, r.RiskTypeID.UUID); err != nil {
			return api.NewAppError(err, api.ErrorRiskUnknownRiskType, api.CategoryUser)
		}
	}

	if err := r.Create(tx); err != nil {
		return err
	}

	if err := r.SetControls(tx, controlIDs); err != nil {
		return err
	}

	if err := r.maybeOpenAssessment(tx, actor); err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiRiskSubmitted,
		Message: "risk submitted by " + actor.Username,
		Payload: events.Payload{domain.EventPayloadID: r.ID},
	})

	return nil
}

// UpdateByUser applies a partial update. A newly-named assessor on an
// L1-owned risk opens a Pending assessment the same as at creation time.
func (r *Risk) UpdateByUser(tx *pop.Connection, input api.RiskUpdateInput, actor User) error {
	hadAssessor := r.AssessorID.Valid

	if err := r.applyUpdate(input); err != nil {
		return err
	}

	if r.RiskTypeID.Valid {
		var riskType RiskType
		if err := riskType.FindByID(tx, r.RiskTypeID.UUID); err != nil {
			return api.NewAppError(err, api.ErrorRiskUnknownRiskType, api.CategoryUser)
		}
	}

	if err := r.Update(tx); err != nil {
		return err
	}

	if input.ControlIDs != nil {
		if err := r.SetControls(tx, *input.ControlIDs); err != nil {
			return err
		}
	}

	if !hadAssessor && r.AssessorID.Valid {
		if err := r.maybeOpenAssessment(tx, actor); err != nil {
			return err
		}
	}

	return nil
}

func (r *Risk) applyUpdate(input api.RiskUpdateInput) error {
	if input.Description != nil {
		r.Description = *input.Description
	}

	scales := map[*int]*float64{
		&r.InherentProbability: input.InherentProbability,
		&r.InherentImpact:      input.InherentImpact,
		&r.ResidualProbability: input.ResidualProbability,
		&r.ResidualImpact:      input.ResidualImpact,
	}
	for field, value := range scales {
		if value == nil {
			continue
		}
		n, err := rating.ParseScale(*value)
		if err != nil {
			return api.NewAppError(err, api.ErrorInvalidRatingInput, api.CategoryUser)
		}
		*field = n
	}

	// a zero uuid clears the reference, absent leaves it unchanged
	if input.AssessorID != nil {
		r.AssessorID = nulls.NewUUID(*input.AssessorID)
		if *input.AssessorID == uuid.Nil {
			r.AssessorID = nulls.UUID{}
		}
	}
	if input.RiskTypeID != nil {
		r.RiskTypeID = nulls.NewUUID(*input.RiskTypeID)
		if *input.RiskTypeID == uuid.Nil {
			r.RiskTypeID = nulls.UUID{}
		}
	}

	return nil
}

// SetControls replaces the risk's control links with the given set
func (r *Risk) SetControls(tx *pop.Connection, controlIDs []uuid.UUID) error {
	for _, id := range controlIDs {
		var control Control
		if err := control.FindByID(tx, id); err != nil {
			return api.NewAppError(
				fmt.Errorf("control %s not found: %w", id, err),
				api.ErrorRiskUnknownControl,
				api.CategoryUser,
			)
		}
	}

	if err := tx.RawQuery("DELETE FROM risk_controls WHERE risk_id = ?", r.ID).Exec(); err != nil {
		return appErrorFromDB(err, api.ErrorUpdateFailure)
	}

	for _, id := range controlIDs {
		link := RiskControl{RiskID: r.ID, ControlID: id}
		if err := create(tx, &link); err != nil {
			return err
		}
	}

	r.Controls = nil
	return r.LoadControls(tx)
}

// maybeOpenAssessment creates a Pending assessment for the named assessor.
// L2 users manage their own risks without sign-off, so only L1 submissions
// enter the approval queue. An existing Pending assessment is left alone.
func (r *Risk) maybeOpenAssessment(tx *pop.Connection, actor User) error {
	if !r.AssessorID.Valid || actor.Role != api.UserRoleL1 {
		return nil
	}

	n, err := tx.Where("risk_id = ? AND status = ?", r.ID, api.AssessmentStatusPending).
		Count(&RiskAssessment{})
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	if n > 0 {
		return nil
	}

	assessment := RiskAssessment{
		RiskID:     r.ID,
		AssessorID: r.AssessorID.UUID,
		Status:     api.AssessmentStatusPending,
	}
	return assessment.Create(tx)
}

func (r *Risk) LoadOwner(tx *pop.Connection) error {
	if r.Owner.ID.Version() == 0 {
		if err := tx.Load(r, "Owner"); err != nil {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}
	}
	return nil
}

func (r *Risk) LoadControls(tx *pop.Connection) error {
	if r.Controls == nil {
		if err := tx.Load(r, "Controls"); err != nil {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}
	}
	return nil
}

// List loads a page of risks matching the query criteria, returning the
// total matching count and page count for the response envelope.
func (r *Risks) List(tx *pop.Connection, query api.QueryParams) (int, int, error) {
	q := tx.Q().Order("created_at desc")

	if s := query.Search(); s != "" {
		q.Where("description ILIKE ?", "%"+s+"%")
	}
	if owner := query.Filter(api.FilterOwner); owner != "" {
		q.Where("owner_id = ?", owner)
	}
	if assessor := query.Filter(api.FilterAssessor); assessor != "" {
		q.Where("assessor_id = ?", assessor)
	}
	if riskType := query.Filter(api.FilterRiskType); riskType != "" {
		q.Where("risk_type_id = ?", riskType)
	}

	q.Paginate(query.Page(), query.PageSize())
	if err := q.EagerPreload("Owner", "Controls").All(r); err != nil {
		return 0, 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return q.Paginator.TotalEntriesSize, q.Paginator.TotalPages, nil
}

// GetAll loads every risk, used by the matrix and dashboard aggregates
func (r *Risks) GetAll(tx *pop.Connection) error {
	err := tx.Order("created_at desc").All(r)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// Matrix places every risk in the 5x5 grid, once by its inherent pair and
// once by its residual pair.
func Matrix(tx *pop.Connection) (api.RiskMatrix, error) {
	var risks Risks
	if err := risks.GetAll(tx); err != nil {
		return api.RiskMatrix{}, err
	}

	matrix := api.RiskMatrix{
		Inherent: make([]api.RiskMatrixPoint, len(risks)),
		Residual: make([]api.RiskMatrixPoint, len(risks)),
	}
	for i, risk := range risks {
		apiRisk, err := ConvertRisk(tx, risk)
		if err != nil {
			return api.RiskMatrix{}, err
		}
		matrix.Inherent[i] = api.RiskMatrixPoint{
			X:    risk.InherentProbability,
			Y:    risk.InherentImpact,
			Risk: apiRisk,
		}
		matrix.Residual[i] = api.RiskMatrixPoint{
			X:    risk.ResidualProbability,
			Y:    risk.ResidualImpact,
			Risk: apiRisk,
		}
	}
	return matrix, nil
}

// CountRisks returns the total number of risks
func CountRisks(tx *pop.Connection) (int, error) {
	n, err := tx.Count(&Risk{})
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return n, nil
}

// CountHighRisks counts risks whose residual classification is high or
// critical, using the same table as every other classification in the app.
func CountHighRisks(tx *pop.Connection) (int, error) {
	var risks Risks
	if err := risks.GetAll(tx); err != nil {
		return 0, err
	}

	n := 0
	for _, r := range risks {
		level := rating.ClassifyRating(r.ResidualProbability * r.ResidualImpact)
		if level == rating.LevelHigh || level == rating.LevelCritical {
			n++
		}
	}
	return n, nil
}

// ConvertRisk hydrates the risk's relations and derives its ratings. The
// risk level badge classifies the residual pair.
func ConvertRisk(tx *pop.Connection, r Risk) (api.Risk, error) {
	if err := r.LoadOwner(tx); err != nil {
		return api.Risk{}, err
	}
	if err := r.LoadControls(tx); err != nil {
		return api.Risk{}, err
	}

	controls, err := ConvertControls(tx, r.Controls)
	if err != nil {
		return api.Risk{}, err
	}

	out := api.Risk{
		ID:                  r.ID,
		Description:         r.Description,
		InherentProbability: r.InherentProbability,
		InherentImpact:      r.InherentImpact,
		InherentRating:      r.InherentProbability * r.InherentImpact,
		ResidualProbability: r.ResidualProbability,
		ResidualImpact:      r.ResidualImpact,
		ResidualRating:      r.ResidualProbability * r.ResidualImpact,
		RiskLevel:           rating.ClassifyRating(r.ResidualProbability * r.ResidualImpact),
		Owner:               ConvertUser(r.Owner),
		Controls:            controls,
		LastAssessed:        convertTimeToAPI(r.LastAssessed),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}

	if r.AssessorID.Valid {
		var assessor User
		if err := assessor.FindByID(tx, r.AssessorID.UUID); err != nil {
			return api.Risk{}, err
		}
		apiAssessor := ConvertUser(assessor)
		out.Assessor = &apiAssessor
	}

	if r.RiskTypeID.Valid {
		var riskType RiskType
		if err := riskType.FindByID(tx, r.RiskTypeID.UUID); err != nil {
			return api.Risk{}, err
		}
		apiRiskType := ConvertRiskType(riskType)
		out.RiskType = &apiRiskType
	}

	return out, nil
}

func ConvertRisks(tx *pop.Connection, rs Risks) (api.Risks, error) {
	risks := make(api.Risks, len(rs))
	for i, r := range rs {
		var err error
		if risks[i], err = ConvertRisk(tx, r); err != nil {
			return nil, err
		}
	}
	return risks, nil
}
