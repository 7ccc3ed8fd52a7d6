package adoption_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/adoption-api/internal/application/adoption"
	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/infrastructure/memory"
)

func newPet(id string) *entity.Pet {
	now := time.Now()
	return &entity.Pet{
		ID:            id,
		Name:          "Rex",
		Type:          "dog",
		BirthDate:     now.AddDate(-2, 0, 0),
		Weight:        decimal.NewFromInt(12),
		Height:        decimal.NewFromInt(40),
		ImageFileName: "rex.jpg",
		Status:        entity.StatusAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestAdopt_Foster_SetsStatusAndCarer(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	require.NoError(t, uc.Adopt(ctx, "p1", "user-a", entity.KindFoster))

	p, err := pets.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.StatusFostered, p.Status)
	require.NotNil(t, p.CarerID)
	assert.Equal(t, "user-a", *p.CarerID)
}

func TestAdopt_UnknownKind_RejectedBeforeMutation(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	err := uc.Adopt(ctx, "p1", "user-a", "steal")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, _ := pets.GetByID(ctx, "p1")
	assert.Equal(t, entity.StatusAvailable, p.Status, "rejected kind must not mutate the pet")
	assert.Nil(t, p.CarerID)
}

func TestAdopt_MissingPet_NotFound(t *testing.T) {
	uc := adoption.NewAdoptionUseCase(memory.NewPetRepository())
	err := uc.Adopt(context.Background(), "ghost", "user-a", entity.KindAdopt)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdopt_SecondCaller_Conflicts(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	require.NoError(t, uc.Adopt(ctx, "p1", "user-a", entity.KindAdopt))

	err := uc.Adopt(ctx, "p1", "user-b", entity.KindFoster)
	assert.ErrorIs(t, err, domain.ErrConflict)

	p, _ := pets.GetByID(ctx, "p1")
	assert.Equal(t, entity.StatusOwned, p.Status, "loser must not overwrite the winner")
	assert.Equal(t, "user-a", *p.CarerID)
}

// Two simultaneous adopts on the same available pet: exactly one wins, the
// other gets a conflict, and the winner's kind decides the final status.
func TestAdopt_Concurrent_ExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	kinds := []string{entity.KindAdopt, entity.KindFoster}
	users := []string{"user-a", "user-b"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = uc.Adopt(ctx, "p1", users[i], kinds[i])
		}(i)
	}
	wg.Wait()

	var winners, conflicts int
	winner := -1
	for i, err := range errs {
		switch {
		case err == nil:
			winners++
			winner = i
		case err == domain.ErrConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners, "exactly one adopt call must succeed")
	assert.Equal(t, 1, conflicts, "the other must lose with a conflict")

	p, err := pets.GetByID(ctx, "p1")
	require.NoError(t, err)
	wantStatus, _ := entity.StatusForKind(kinds[winner])
	assert.Equal(t, wantStatus, p.Status, "final status follows the winning kind")
	require.NotNil(t, p.CarerID)
	assert.Equal(t, users[winner], *p.CarerID)
}

func TestReturn_ByCarer_MakesAvailable(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	require.NoError(t, uc.Adopt(ctx, "p1", "user-a", entity.KindFoster))
	require.NoError(t, uc.Return(ctx, "p1", "user-a"))

	p, _ := pets.GetByID(ctx, "p1")
	assert.Equal(t, entity.StatusAvailable, p.Status)
	assert.Nil(t, p.CarerID, "carer must be cleared once available again")
}

// A return by anyone other than the current carer is an ownership failure and
// must not mutate state, even though the pet is in a returnable status.
func TestReturn_ByStranger_NotOwnerAndNoMutation(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	require.NoError(t, uc.Adopt(ctx, "p1", "user-a", entity.KindAdopt))

	err := uc.Return(ctx, "p1", "user-c")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	p, _ := pets.GetByID(ctx, "p1")
	assert.Equal(t, entity.StatusOwned, p.Status)
	assert.Equal(t, "user-a", *p.CarerID)
}

func TestReturn_AvailablePet_NotOwner(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	err := uc.Return(ctx, "p1", "user-a")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestReturn_MissingPet_NotFound(t *testing.T) {
	uc := adoption.NewAdoptionUseCase(memory.NewPetRepository())
	err := uc.Return(context.Background(), "ghost", "user-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Full cycle: every state is revisitable and the carer-iff-not-available
// invariant holds at each step.
func TestAdoptReturnCycle_InvariantHolds(t *testing.T) {
	ctx := context.Background()
	pets := memory.NewPetRepository()
	require.NoError(t, pets.Create(ctx, newPet("p1")))
	uc := adoption.NewAdoptionUseCase(pets)

	check := func() {
		t.Helper()
		p, err := pets.GetByID(ctx, "p1")
		require.NoError(t, err)
		if p.Status == entity.StatusAvailable {
			assert.Nil(t, p.CarerID)
		} else {
			assert.NotNil(t, p.CarerID)
		}
	}

	check()
	require.NoError(t, uc.Adopt(ctx, "p1", "user-a", entity.KindFoster))
	check()
	require.NoError(t, uc.Return(ctx, "p1", "user-a"))
	check()
	require.NoError(t, uc.Adopt(ctx, "p1", "user-b", entity.KindAdopt))
	check()
	require.NoError(t, uc.Return(ctx, "p1", "user-b"))
	check()
}
