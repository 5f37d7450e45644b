package game

import (
	"math/rand"
	"testing"

	"github.com/dekarrin/darkstar/internal/game/gamemock"
	"github.com/dekarrin/darkstar/internal/sched"
	"github.com/dekarrin/darkstar/internal/tuning"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DoorAccessTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	present *gamemock.MockPresenter
	clock   *sched.Manual
	tune    tuning.Config
	gs      *State
}

func (s *DoorAccessTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.present = gamemock.NewMockPresenter(s.ctrl)
	s.tune = tuning.Defaults()
	s.resetState()
}

func (s *DoorAccessTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DoorAccessTestSuite) give(id string) {
	item, err := s.gs.World.NewItem(id)
	s.Require().NoError(err)
	s.Require().NoError(s.gs.Player.Add(item))
}

func (s *DoorAccessTestSuite) door(id string) *Door {
	return s.gs.World.Doors[id]
}

func (s *DoorAccessTestSuite) TestLowSecurityUnlockThenGo() {
	s.give(ItemLowSecCard)

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/galley_panel.png"),
		s.present.EXPECT().ShowImage("img/galley_open.png"),
		s.present.EXPECT().ShowText("ID accepted, door unlocked. Access to Galley is now open."),
		s.present.EXPECT().ShowImage("img/galley.png"),
	)

	out := s.gs.Process("unlock galley")

	s.Equal("Swiping door access panel, checking card ID...", out)
	s.Equal(PendingSwipe, s.gs.Pending())
	s.True(s.door("d_galley").Locked)

	s.Equal(0, s.clock.Advance(s.tune.SwipeDelay/2))
	s.True(s.door("d_galley").Locked)

	s.Equal(1, s.clock.Advance(s.tune.SwipeDelay))
	s.False(s.door("d_galley").Locked)
	s.Equal(PendingNone, s.gs.Pending())

	s.Equal("You enter the Galley.", s.gs.Process("go galley"))
	s.Equal("galley", s.gs.CurrentRoom.ID)
}

func (s *DoorAccessTestSuite) TestLockFromOtherSide() {
	s.give(ItemLowSecCard)
	s.door("d_galley").Locked = false
	s.gs.CurrentRoom = s.gs.World.Rooms["galley"]

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/galley_panel.png"),
		s.present.EXPECT().ShowImage("img/galley_locked.png"),
		s.present.EXPECT().ShowText("ID accepted, door locked. Access to Corridor is now closed."),
	)

	s.Equal("Swiping door access panel, checking card ID...", s.gs.Process("lock"))
	s.clock.Advance(s.tune.SwipeDelay)

	s.True(s.door("d_galley").Locked)
}

func (s *DoorAccessTestSuite) TestArchwayHasNoLock() {
	s.gs.CurrentRoom = s.gs.World.Rooms["crew_quarters"]

	s.Equal("There is an open archway between Crew Quarters and Corridor, it has no lock.", s.gs.Process("lock corridor"))
	s.Equal("There is an open archway between Crew Quarters and Corridor, there is nothing to unlock.", s.gs.Process("unlock aft"))
	s.Equal(0, s.clock.Pending())
	s.Equal(PendingNone, s.gs.Pending())
}

func (s *DoorAccessTestSuite) TestTargetResolution() {
	s.Equal("There is no such exit.", s.gs.Process("unlock airlock"))
	s.Equal("Which door?", s.gs.Process("unlock"))
	s.Equal("That door is already locked.", s.gs.Process("lock the galley door"))

	s.door("d_galley").Locked = false
	s.Equal("That door is already unlocked.", s.gs.Process("unlock kitchen"))
	s.Equal(0, s.clock.Pending())
}

func (s *DoorAccessTestSuite) TestNoCard() {
	s.Equal("You need an ID card to swipe the door access panel.", s.gs.Process("unlock galley"))
	s.Equal(0, s.clock.Pending())
}

func (s *DoorAccessTestSuite) TestBrokenPanel() {
	s.give(ItemHighSecCard)
	s.door("d_galley").PanelFor("corridor").Damage()

	s.present.EXPECT().ShowImage("img/galley_panel_damaged.png")

	out := s.gs.Process("unlock galley")

	s.Equal("The door access panel on this side is damaged and currently unusable. Repairing it may be possible.", out)
	s.Equal(0, s.clock.Pending())
	s.True(s.door("d_galley").Locked)
}

func (s *DoorAccessTestSuite) TestWrongCard() {
	s.give(ItemLowSecCard)

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/cargo_panel.png"),
		s.present.EXPECT().ShowImage("img/cargo_locked.png"),
		s.present.EXPECT().ShowText("Access denied: high-security clearance required."),
	)

	s.gs.Process("unlock cargo")
	s.clock.Advance(s.tune.SwipeDelay)

	s.True(s.door("d_cargo").Locked)
	s.Equal(PendingNone, s.gs.Pending())
}

func (s *DoorAccessTestSuite) TestSwipeInProgressRejectsAnother() {
	s.give(ItemHighSecCard)

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/galley_panel.png"),
		s.present.EXPECT().ShowImage("img/galley_open.png"),
		s.present.EXPECT().ShowText("ID accepted, door unlocked. Access to Galley is now open."),
	)

	s.gs.Process("unlock galley")
	s.Equal("The door access panel is still checking a card. Wait for it to finish.", s.gs.Process("unlock cargo bay"))
	s.Equal(1, s.clock.Pending())

	s.clock.Advance(s.tune.SwipeDelay)

	s.False(s.door("d_galley").Locked)
	s.True(s.door("d_cargo").Locked)
}

func (s *DoorAccessTestSuite) TestLeavingDropsSwipe() {
	s.give(ItemLowSecCard)

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/galley_panel.png"),
		s.present.EXPECT().ShowImage("img/crew.png"),
	)

	s.gs.Process("unlock galley")
	s.Equal("You enter the Crew Quarters.", s.gs.Process("go fore"))
	s.Equal(PendingNone, s.gs.Pending())

	s.Equal(1, s.clock.Advance(s.tune.SwipeDelay))

	s.True(s.door("d_galley").Locked)
}

func (s *DoorAccessTestSuite) TestPINAccepted() {
	s.give(ItemHighSecCard)

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/bridge_panel.png"),
		s.present.EXPECT().ShowText("Enter PIN to unlock the door to Bridge (0/3 attempts)"),
		s.present.EXPECT().ShowText("Incorrect PIN. Attempts left: 2/3"),
		s.present.EXPECT().ShowImage("img/bridge_open.png"),
		s.present.EXPECT().ShowText("PIN accepted. Door unlocked. Access to Bridge is now open."),
	)

	s.gs.Process("unlock bridge")
	s.clock.Advance(s.tune.SwipeDelay)
	s.Equal(PendingPIN, s.gs.Pending())
	s.True(s.door("d_bridge").Locked)

	s.Equal("", s.gs.Process("9999"))
	s.Equal(PendingPIN, s.gs.Pending())

	s.Equal("", s.gs.Process(" 1234 "))

	s.False(s.door("d_bridge").Locked)
	s.Equal(PendingNone, s.gs.Pending())
	s.True(s.gs.Player.Has(ItemHighSecCard))
}

func (s *DoorAccessTestSuite) TestPINRedirectsCommands() {
	s.give(ItemHighSecCard)

	s.present.EXPECT().ShowImage(gomock.Any()).AnyTimes()
	s.present.EXPECT().ShowText(gomock.Any()).AnyTimes()

	s.gs.Process("unlock bridge")
	s.clock.Advance(s.tune.SwipeDelay)

	s.Equal("", s.gs.Process("go fore"))

	s.Equal("corridor", s.gs.CurrentRoom.ID)
	s.Equal(PendingPIN, s.gs.Pending())
}

func (s *DoorAccessTestSuite) TestPINLockout() {
	s.give(ItemLowSecCard)
	s.give(ItemHighSecCard)
	panel := s.door("d_bridge").PanelFor("corridor")

	var lockoutText string
	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/bridge_panel.png"),
		s.present.EXPECT().ShowText("Enter PIN to unlock the door to Bridge (0/3 attempts)"),
		s.present.EXPECT().ShowText("Incorrect PIN. Attempts left: 2/3"),
		s.present.EXPECT().ShowText("Incorrect PIN. Attempts left: 1/3"),
		s.present.EXPECT().ShowImage("img/bridge_locked.png"),
		// the room description goes with the lockout message so neither
		// replaces the other
		s.present.EXPECT().ShowText(gomock.Any()).Times(1).Do(func(text string) {
			lockoutText = text
		}),
	)

	s.gs.Process("unlock bridge")
	s.clock.Advance(s.tune.SwipeDelay)
	for i := 0; i < 3; i++ {
		s.Equal("", s.gs.Process("0000"))
	}

	s.True(s.door("d_bridge").Locked)
	s.False(panel.Broken)
	s.Equal(PendingNone, s.gs.Pending())
	s.False(s.gs.Player.Has(ItemHighSecCard))
	s.True(s.gs.Player.Has(ItemHighSecCardDamaged))
	s.Equal(ItemHighSecCardDamaged, s.gs.Player.Inventory[1].ID)
	s.True(s.gs.Player.Has(ItemLowSecCard))
	s.Equal("Access denied after 3 incorrect PIN attempts. Process terminated.\nID card invalidated.\n\n"+s.gs.Describe(), lockoutText)

	// normal parsing is back
	s.Equal("Ship time: 01-01-2276  00:00", s.gs.Process("time"))
}

func (s *DoorAccessTestSuite) TestPINLockoutIsDeterministic() {
	s.present.EXPECT().ShowImage(gomock.Any()).AnyTimes()
	s.present.EXPECT().ShowText(gomock.Any()).AnyTimes()

	for run := 0; run < 3; run++ {
		s.resetState()
		s.give(ItemHighSecCard)

		s.gs.Process("unlock bridge")
		s.clock.Advance(s.tune.SwipeDelay)
		s.gs.Process("1111")
		s.gs.Process("2222")
		s.gs.Process("3333")

		s.True(s.door("d_bridge").Locked, "run %d", run)
		s.False(s.door("d_bridge").PanelFor("corridor").Broken, "run %d", run)
		s.True(s.gs.Player.Has(ItemHighSecCardDamaged), "run %d", run)
	}
}

// resetState replaces the game state with a fresh one that shares the
// current mock presenter.
func (s *DoorAccessTestSuite) resetState() {
	s.clock = sched.NewManual()
	gs, err := New(testWorld(), Options{
		Presenter: s.present,
		Scheduler: s.clock,
		Tuning:    &s.tune,
		Rand:      rand.New(rand.NewSource(1)),
	})
	s.Require().NoError(err)
	s.gs = gs
	s.gs.CurrentRoom = gs.World.Rooms["corridor"]
}

func (s *DoorAccessTestSuite) TestRepairSingle() {
	panel := s.door("d_galley").PanelFor("corridor")
	panel.Damage()

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/galley_panel_damaged.png"),
		s.present.EXPECT().ShowText("Repairing door access panel..."),
		s.present.EXPECT().ShowImage("img/galley_panel.png"),
		s.present.EXPECT().ShowText("You repair the door access panel to Galley. It is now operational."),
	)

	s.Equal("", s.gs.Process("repair door panel"))

	s.False(panel.Broken)
	s.Equal(1.0, panel.RepairProgress)
	s.Equal(int64(s.tune.RepairMinutes), s.gs.Clock.Elapsed())

	s.Equal(0, s.clock.Advance(s.tune.SwipeDelay))
	s.Equal(1, s.clock.Advance(s.tune.RepairDelay))
}

func (s *DoorAccessTestSuite) TestRepairAfterLeaving() {
	s.door("d_galley").PanelFor("corridor").Damage()

	gomock.InOrder(
		s.present.EXPECT().ShowImage("img/galley_panel_damaged.png"),
		s.present.EXPECT().ShowText("Repairing door access panel..."),
		s.present.EXPECT().ShowImage("img/crew.png"),
		s.present.EXPECT().ShowText("You repair the door access panel to Galley. It is now operational."),
	)

	s.gs.Process("fix panel")
	s.gs.Process("go fore")
	s.clock.Advance(s.tune.RepairDelay)
}

func (s *DoorAccessTestSuite) TestRepairChoosesTarget() {
	galley := s.door("d_galley").PanelFor("corridor")
	cargo := s.door("d_cargo").PanelFor("corridor")
	galley.Damage()
	cargo.Damage()

	s.present.EXPECT().ShowImage(gomock.Any()).AnyTimes()
	s.present.EXPECT().ShowText(gomock.Any()).AnyTimes()

	s.Equal("Which door access panel do you want to repair? (Galley, Cargo Bay)", s.gs.Process("repair door access panel"))
	s.Equal("No damaged door access panel to 'bridge'.", s.gs.Process("repair panel bridge"))
	s.Equal("No damaged door access panel to 'airlock'.", s.gs.Process("repair panel airlock"))

	s.Equal("", s.gs.Process("repair door panel cargo"))
	s.False(cargo.Broken)
	s.True(galley.Broken)
}

func (s *DoorAccessTestSuite) TestRepairNothingBroken() {
	s.Equal("There are no damaged door access panels in this room.", s.gs.Process("repair door panel"))
	s.Equal(0, s.clock.Pending())
}

func Test_DoorAccess(t *testing.T) {
	suite.Run(t, new(DoorAccessTestSuite))
}
