package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawhaven/adoption-api/internal/application/dto"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
	"github.com/pawhaven/adoption-api/pkg/config"
	"github.com/shopspring/decimal"
)

// PetUseCase pet catalogue use cases: admin create/edit plus the public reads.
// Status and carer transitions live in the adoption package, not here.
type PetUseCase struct {
	repo    repository.PetRepository
	shelter config.ShelterConfig
}

// NewPetUseCase builds the use case.
func NewPetUseCase(repo repository.PetRepository, shelter config.ShelterConfig) *PetUseCase {
	return &PetUseCase{repo: repo, shelter: shelter}
}

// Types returns the configured animal-type set.
func (uc *PetUseCase) Types() []string {
	return uc.shelter.AnimalTypes
}

// Create registers a new pet as available with no carer. The type must belong
// to the configured set and an image reference must be attached.
func (uc *PetUseCase) Create(ctx context.Context, in dto.CreatePetRequest) (*dto.PetResponse, dto.FieldErrors, error) {
	fieldErrs := uc.validatePetForm(in)
	if !fieldErrs.Empty() {
		return nil, fieldErrs, nil
	}
	now := time.Now()
	pet := &entity.Pet{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Type:           in.Type,
		Breed:          in.Breed,
		Color:          in.Color,
		Diet:           in.Diet,
		Bio:            in.Bio,
		BirthDate:      in.BirthDate,
		Weight:         in.Weight,
		Height:         in.Height,
		Hypoallergenic: in.Hypoallergenic,
		ImageFileName:  in.ImageFileName,
		Status:         entity.StatusAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, pet); err != nil {
		return nil, nil, err
	}
	return toPetResponse(pet), nil, nil
}

func (uc *PetUseCase) validatePetForm(in dto.CreatePetRequest) dto.FieldErrors {
	errs := dto.FieldErrors{}
	if in.Name == "" {
		errs["name"] = "name is empty"
	}
	if !uc.shelter.HasAnimalType(in.Type) {
		errs["type"] = "type is not a recognized animal type"
	}
	if in.ImageFileName == "" {
		errs["image"] = "an image must be attached"
	}
	if !in.Weight.IsPositive() {
		errs["weight"] = "weight must be positive"
	}
	if !in.Height.IsPositive() {
		errs["height"] = "height must be positive"
	}
	return errs
}

// GetByID fetches a pet by ID. Never mutates state.
func (uc *PetUseCase) GetByID(ctx context.Context, id string) (*dto.PetResponse, error) {
	pet, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, nil
	}
	return toPetResponse(pet), nil
}

// Update edits a pet's descriptive fields (admin). Status and carer are
// untouched; those move only through the adoption use case.
func (uc *PetUseCase) Update(ctx context.Context, id string, in dto.UpdatePetRequest) (*dto.PetResponse, dto.FieldErrors, error) {
	pet, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if pet == nil {
		return nil, nil, nil
	}
	fieldErrs := dto.FieldErrors{}
	if in.Name != nil {
		if *in.Name == "" {
			fieldErrs["name"] = "name is empty"
		} else {
			pet.Name = *in.Name
		}
	}
	if in.Type != nil {
		if !uc.shelter.HasAnimalType(*in.Type) {
			fieldErrs["type"] = "type is not a recognized animal type"
		} else {
			pet.Type = *in.Type
		}
	}
	if in.Weight != nil {
		if !in.Weight.IsPositive() {
			fieldErrs["weight"] = "weight must be positive"
		} else {
			pet.Weight = *in.Weight
		}
	}
	if in.Height != nil {
		if !in.Height.IsPositive() {
			fieldErrs["height"] = "height must be positive"
		} else {
			pet.Height = *in.Height
		}
	}
	if in.ImageFileName != nil {
		if *in.ImageFileName == "" {
			fieldErrs["image"] = "an image must be attached"
		} else {
			pet.ImageFileName = *in.ImageFileName
		}
	}
	if !fieldErrs.Empty() {
		return nil, fieldErrs, nil
	}
	if in.Breed != nil {
		pet.Breed = *in.Breed
	}
	if in.Color != nil {
		pet.Color = *in.Color
	}
	if in.Diet != nil {
		pet.Diet = *in.Diet
	}
	if in.Bio != nil {
		pet.Bio = *in.Bio
	}
	if in.BirthDate != nil {
		pet.BirthDate = *in.BirthDate
	}
	if in.Hypoallergenic != nil {
		pet.Hypoallergenic = *in.Hypoallergenic
	}
	pet.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pet); err != nil {
		return nil, nil, err
	}
	return toPetResponse(pet), nil, nil
}

// Search filters pets by the query parameters of GET /pet.
func (uc *PetUseCase) Search(ctx context.Context, in dto.SearchPetsRequest) (*dto.PetListResponse, dto.FieldErrors, error) {
	in.DefaultPage()
	filter := repository.PetFilter{
		Name:   in.Name,
		Status: in.Status,
		Type:   in.Type,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	fieldErrs := dto.FieldErrors{}
	if in.BirthDate != "" {
		t, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil {
			fieldErrs["birthdate"] = "birthdate must be formatted YYYY-MM-DD"
		} else {
			filter.BirthDate = &t
		}
	}
	parseMeasure := func(raw, field string) *decimal.Decimal {
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fieldErrs[field] = field + " must be a number"
			return nil
		}
		return &d
	}
	filter.MinWeight = parseMeasure(in.MinWeight, "minWeight")
	filter.MaxWeight = parseMeasure(in.MaxWeight, "maxWeight")
	filter.MinHeight = parseMeasure(in.MinHeight, "minHeight")
	filter.MaxHeight = parseMeasure(in.MaxHeight, "maxHeight")
	if in.Hypoallergenic != "" {
		switch in.Hypoallergenic {
		case "true":
			v := true
			filter.Hypoallergenic = &v
		case "false":
			v := false
			filter.Hypoallergenic = &v
		default:
			fieldErrs["hypoallergenic"] = "hypoallergenic must be true or false"
		}
	}
	if !fieldErrs.Empty() {
		return nil, fieldErrs, nil
	}

	list, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return &dto.PetListResponse{
		Items: toPetResponses(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil, nil
}

// ListByCarer returns the pets currently cared for by userID.
func (uc *PetUseCase) ListByCarer(ctx context.Context, userID string) ([]dto.PetResponse, error) {
	list, err := uc.repo.ListByCarer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPetResponses(list), nil
}

func toPetResponses(list []*entity.Pet) []dto.PetResponse {
	items := make([]dto.PetResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPetResponse(p))
	}
	return items
}

func toPetResponse(p *entity.Pet) *dto.PetResponse {
	if p == nil {
		return nil
	}
	return &dto.PetResponse{
		ID:             p.ID,
		Name:           p.Name,
		Type:           p.Type,
		Breed:          p.Breed,
		Color:          p.Color,
		Diet:           p.Diet,
		Bio:            p.Bio,
		BirthDate:      p.BirthDate,
		Weight:         p.Weight,
		Height:         p.Height,
		Hypoallergenic: p.Hypoallergenic,
		ImageFileName:  p.ImageFileName,
		Status:         p.Status,
		CarerID:        p.CarerID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
