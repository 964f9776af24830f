package movement_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	movecostmock "github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost/mock"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/orchestrators/movement"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/clock"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/idgen"
	pawnrepo "github.com/Toakan-Network/RW-MassAffect/internal/repositories/pawn"
	pawnmock "github.com/Toakan-Network/RW-MassAffect/internal/repositories/pawn/mock"
	"github.com/Toakan-Network/RW-MassAffect/internal/testutils"
	"github.com/Toakan-Network/RW-MassAffect/internal/tuning"
)

type failingBus struct{}

func (failingBus) Publish(_ context.Context, _ events.Event) error {
	return errors.Unavailable("bus closed")
}
func (failingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (failingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (failingBus) Unsubscribe(_ string) error { return nil }
func (failingBus) Clear(_ string)             {}
func (failingBus) ClearAll()                  {}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *pawnmock.MockRepository
	clock    *clock.Fixed
	bus      events.EventBus
	cfg      *movement.Config
	captured []events.Event
	svc      movement.Service
	ctx      context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = pawnmock.NewMockRepository(s.ctrl)
	s.clock = &clock.Fixed{At: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s.ctx = context.Background()

	mcfg := &movecost.Config{Tuning: tuning.Default().Movement}
	calc, err := movecost.NewCalculator(mcfg)
	s.Require().NoError(err)
	baseline, err := movecost.NewBaseline(mcfg)
	s.Require().NoError(err)

	s.captured = nil
	s.bus = events.NewBus()
	s.bus.SubscribeFunc(movement.EventCostComputed, 0, func(_ context.Context, e events.Event) error {
		s.captured = append(s.captured, e)
		return nil
	})

	s.cfg = &movement.Config{
		PawnRepo:    s.repo,
		Provider:    calc,
		Fallback:    baseline,
		EventBus:    s.bus,
		IDGenerator: idgen.NewSequential("move"),
		Clock:       s.clock,
	}

	s.svc, err = movement.NewOrchestrator(s.cfg)
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := movement.NewOrchestrator(nil)
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = movement.NewOrchestrator(&movement.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "PawnRepo")
	s.Contains(err.Error(), "Fallback")
	s.Contains(err.Error(), "Clock")
}

func (s *OrchestratorTestSuite) TestTicksPerMove() {
	out, err := s.svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{Pawn: testutils.CreateTestPawn()})
	s.Require().NoError(err)

	s.Equal("move_1", out.ComputationID)
	s.Equal(testutils.TestPawnID, out.PawnID)
	s.InDelta(15.0, out.Ticks, 1e-9)
	s.True(out.Override)
	s.Equal(movecost.ProviderMass, out.Provider)
	s.Nil(out.Breakdown)
}

func (s *OrchestratorTestSuite) TestTicksPerMoveExplain() {
	out, err := s.svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{
		Pawn:     testutils.CreateTestRescuer(),
		Diagonal: true,
		Explain:  true,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Breakdown)

	s.InDelta(60*1.41421, out.Ticks, 1e-6)
	s.InDelta(0.5, out.Breakdown.CarriedCharacterFactor, 1e-9)
	s.InDelta(25.0, out.Breakdown.CarriedCharacterMass, 1e-9)
	s.InDelta(0.5, out.Breakdown.WeatherMultiplier, 1e-9)
	s.Equal(out.Ticks, out.Breakdown.Ticks)
}

func (s *OrchestratorTestSuite) TestExplainPricesOnce() {
	primary := movecostmock.NewMockExplainer(s.ctrl)
	fallback := movecostmock.NewMockExplainer(s.ctrl)

	cfg := *s.cfg
	cfg.Provider = primary
	cfg.Fallback = fallback
	svc, err := movement.NewOrchestrator(&cfg)
	s.Require().NoError(err)

	s.Run("primary answers", func() {
		primary.EXPECT().Explain(gomock.Any()).
			Return(movecost.Breakdown{BaseSpeed: 4, Ticks: 15, Override: true}).Times(1)
		primary.EXPECT().Name().Return("mass")

		out, err := svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{
			Pawn:    testutils.CreateTestPawn(),
			Explain: true,
		})
		s.Require().NoError(err)
		s.Require().NotNil(out.Breakdown)
		s.Equal(15.0, out.Ticks)
		s.True(out.Override)
		s.Equal("mass", out.Provider)
		s.Equal(4.0, out.Breakdown.BaseSpeed)
	})

	s.Run("fallback answers", func() {
		primary.EXPECT().Explain(gomock.Any()).Return(movecost.Breakdown{Ticks: 15}).Times(1)
		fallback.EXPECT().Explain(gomock.Any()).Return(movecost.Breakdown{Ticks: 25}).Times(1)
		fallback.EXPECT().Name().Return("baseline")

		out, err := svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{
			Pawn:    testutils.CreateTestPawn(),
			Explain: true,
		})
		s.Require().NoError(err)
		s.Equal(25.0, out.Ticks)
		s.False(out.Override)
		s.Equal("baseline", out.Provider)
		s.Equal(out.Ticks, out.Breakdown.Ticks)
	})
}

func (s *OrchestratorTestSuite) TestTicksPerMoveFallsBack() {
	cfg := *s.cfg
	cfg.Provider = s.cfg.Fallback
	svc, err := movement.NewOrchestrator(&cfg)
	s.Require().NoError(err)

	out, err := svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{Pawn: testutils.CreateTestPawn()})
	s.Require().NoError(err)

	s.False(out.Override)
	s.Equal(movecost.ProviderBaseline, out.Provider)
	s.InDelta(15.0, out.Ticks, 1e-9)
}

func (s *OrchestratorTestSuite) TestTicksPerMoveInvalid() {
	_, err := s.svc.TicksPerMove(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{})
	s.True(errors.IsInvalidArgument(err))

	p := testutils.CreateTestPawn()
	p.Stats.MoveSpeed = -1
	_, err = s.svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{Pawn: p})
	s.True(errors.IsInvalidArgument(err))
	s.Empty(s.captured)
}

func (s *OrchestratorTestSuite) TestPublishesEvent() {
	_, err := s.svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{
		Pawn:     testutils.CreateTestPawn(),
		Diagonal: true,
	})
	s.Require().NoError(err)
	s.Require().Len(s.captured, 1)

	evt := s.captured[0]
	s.Equal(movement.EventCostComputed, evt.Type())
	s.Equal(testutils.TestPawnID, evt.Source().GetID())

	id, ok := evt.Context().Get(movement.EventKeyComputationID)
	s.True(ok)
	s.Equal("move_1", id)

	provider, ok := evt.Context().Get(movement.EventKeyProvider)
	s.True(ok)
	s.Equal(movecost.ProviderMass, provider)

	diagonal, ok := evt.Context().Get(movement.EventKeyDiagonal)
	s.True(ok)
	s.Equal(true, diagonal)
}

func (s *OrchestratorTestSuite) TestPublishFailureDoesNotFail() {
	cfg := *s.cfg
	cfg.EventBus = failingBus{}
	svc, err := movement.NewOrchestrator(&cfg)
	s.Require().NoError(err)

	out, err := svc.TicksPerMove(s.ctx, &movement.TicksPerMoveInput{Pawn: testutils.CreateTestPawn()})
	s.Require().NoError(err)
	s.InDelta(15.0, out.Ticks, 1e-9)
}

func (s *OrchestratorTestSuite) TestTicksPerMoveForPawn() {
	s.Run("stored pawn", func() {
		s.repo.EXPECT().
			Get(s.ctx, pawnrepo.GetInput{ID: "pawn-test-rescuer"}).
			Return(&pawnrepo.GetOutput{Pawn: testutils.CreateTestRescuer()}, nil)

		out, err := s.svc.TicksPerMoveForPawn(s.ctx, &movement.TicksPerMoveForPawnInput{PawnID: "pawn-test-rescuer"})
		s.Require().NoError(err)
		s.Equal("pawn-test-rescuer", out.PawnID)
		s.InDelta(60.0, out.Ticks, 1e-9)
	})

	s.Run("missing pawn", func() {
		s.repo.EXPECT().
			Get(s.ctx, pawnrepo.GetInput{ID: "ghost"}).
			Return(nil, errors.NotFound("pawn not found"))

		_, err := s.svc.TicksPerMoveForPawn(s.ctx, &movement.TicksPerMoveForPawnInput{PawnID: "ghost"})
		s.Require().Error(err)
		s.True(errors.IsNotFound(err))
	})

	s.Run("empty id", func() {
		_, err := s.svc.TicksPerMoveForPawn(s.ctx, &movement.TicksPerMoveForPawnInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestPutPawn() {
	s.Run("stamps and stores", func() {
		p := testutils.CreateTestPawn()

		s.repo.EXPECT().
			Put(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, in pawnrepo.PutInput) (*pawnrepo.PutOutput, error) {
				s.Equal(s.clock.At.Unix(), in.Pawn.UpdatedAt)
				s.Equal(time.Hour, in.TTL)
				return &pawnrepo.PutOutput{Pawn: in.Pawn}, nil
			})

		out, err := s.svc.PutPawn(s.ctx, &movement.PutPawnInput{Pawn: p, TTL: time.Hour})
		s.Require().NoError(err)
		s.Equal(s.clock.At.Unix(), out.Pawn.UpdatedAt)
		s.Zero(p.UpdatedAt, "caller's snapshot is not mutated")
	})

	s.Run("requires id", func() {
		p := testutils.CreateTestPawn()
		p.ID = ""

		_, err := s.svc.PutPawn(s.ctx, &movement.PutPawnInput{Pawn: p})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("negative ttl", func() {
		_, err := s.svc.PutPawn(s.ctx, &movement.PutPawnInput{Pawn: testutils.CreateTestPawn(), TTL: -time.Second})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("store failure", func() {
		s.repo.EXPECT().Put(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

		_, err := s.svc.PutPawn(s.ctx, &movement.PutPawnInput{Pawn: testutils.CreateTestPawn()})
		s.Require().Error(err)
		s.True(errors.IsUnavailable(err))
	})
}

func (s *OrchestratorTestSuite) TestGetPawn() {
	stored := testutils.CreateTestPawn()
	s.repo.EXPECT().
		Get(s.ctx, pawnrepo.GetInput{ID: testutils.TestPawnID}).
		Return(&pawnrepo.GetOutput{Pawn: stored}, nil)

	out, err := s.svc.GetPawn(s.ctx, &movement.GetPawnInput{PawnID: testutils.TestPawnID})
	s.Require().NoError(err)
	s.Equal(stored, out.Pawn)

	_, err = s.svc.GetPawn(s.ctx, &movement.GetPawnInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeletePawn() {
	s.repo.EXPECT().
		Delete(s.ctx, pawnrepo.DeleteInput{ID: testutils.TestPawnID}).
		Return(&pawnrepo.DeleteOutput{}, nil)

	_, err := s.svc.DeletePawn(s.ctx, &movement.DeletePawnInput{PawnID: testutils.TestPawnID})
	s.Require().NoError(err)

	s.repo.EXPECT().
		Delete(s.ctx, pawnrepo.DeleteInput{ID: "ghost"}).
		Return(nil, errors.NotFound("pawn not found"))

	_, err = s.svc.DeletePawn(s.ctx, &movement.DeletePawnInput{PawnID: "ghost"})
	s.True(errors.IsNotFound(err))
}
