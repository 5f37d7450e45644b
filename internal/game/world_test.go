package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dekarrin/darkstar/internal/sched"
	"github.com/dekarrin/darkstar/internal/tuning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPresenter keeps every call made to it as "image:<path>" or
// "text:<text>".
type recordingPresenter struct {
	calls []string
}

func (rp *recordingPresenter) ShowImage(path string) {
	rp.calls = append(rp.calls, "image:"+path)
}

func (rp *recordingPresenter) ShowText(text string) {
	rp.calls = append(rp.calls, "text:"+text)
}

func (rp *recordingPresenter) texts() []string {
	var texts []string
	for _, c := range rp.calls {
		if len(c) > 5 && c[:5] == "text:" {
			texts = append(texts, c[5:])
		}
	}
	return texts
}

func portable(id, name string, mass float64, slot Slot, keywords ...string) *PortableItem {
	return &PortableItem{
		Object: Object{
			ID:          id,
			Name:        name,
			Description: "A " + name + ".",
			Keywords:    keywords,
		},
		Mass:      mass,
		EquipSlot: slot,
	}
}

func doorImages(prefix string) DoorImages {
	return DoorImages{
		Open:         fmt.Sprintf("img/%s_open.png", prefix),
		Locked:       fmt.Sprintf("img/%s_locked.png", prefix),
		Panel:        fmt.Sprintf("img/%s_panel.png", prefix),
		PanelDamaged: fmt.Sprintf("img/%s_panel_damaged.png", prefix),
	}
}

func addDoor(w *World, d *Door) {
	d.Panels = map[string]*SecurityPanel{}
	for _, side := range d.Rooms {
		p := &SecurityPanel{
			ID:             d.ID + ":" + side,
			DoorID:         d.ID,
			Side:           side,
			Security:       d.Security,
			RepairProgress: 1,
		}
		d.Panels[side] = p
		room := w.Rooms[side]
		if room.Panels == nil {
			room.Panels = map[string]*SecurityPanel{}
		}
		room.Panels[d.ID] = p
	}
	w.Doors[d.ID] = d
}

// testWorld builds a small ship:
//
//	crew_quarters <-> corridor           (archway)
//	corridor      <-> galley             (d_galley, low keycard)
//	corridor      <-> bridge             (d_bridge, high keycard + PIN 1234)
//	corridor      <-> cargo_bay          (d_cargo, high keycard)
func testWorld() *World {
	w := &World{
		Rooms:      map[string]*Room{},
		Doors:      map[string]*Door{},
		Start:      "crew_quarters",
		PlayerName: "Jack Harrow",
		ShipName:   "Tempus Fugit",
		Items: map[string]PortableItem{
			ItemLowSecCard:  *portable(ItemLowSecCard, "low-security ID card", 0.01, SlotNone, "low-security id card", "id card", "card"),
			ItemHighSecCard: *portable(ItemHighSecCard, "high-security ID card", 0.01, SlotNone, "high-security id card", "id card", "card"),
		},
	}

	w.Rooms["crew_quarters"] = &Room{
		ID:          "crew_quarters",
		Name:        "Crew Quarters",
		Description: []string{"Bunks line the walls.", "A *corridor* leads aft."},
		Background:  "img/crew.png",
		Dimensions:  Dimensions{Length: 4, Width: 3, Height: 2.5},
		Exits: []*Exit{
			{Key: "corridor", Target: "corridor", Direction: "aft", Shortcuts: []string{"hall", "hallway"}},
		},
		Objects: []Interactable{
			portable("wrench", "wrench", 1.5, SlotNone, "wrench"),
			&FixedObject{Object: Object{
				ID:          "bunk",
				Name:        "bunk",
				Description: "A narrow bunk.",
				ExamineText: "The sheets have not been changed in a while.",
				Keywords:    []string{"bunk", "bed"},
			}},
			&StorageUnit{
				FixedObject: FixedObject{Object: Object{
					ID:       "locker",
					Name:     "storage locker",
					Keywords: []string{"locker", "storage locker", "storage"},
				}},
				Capacity: 5,
				Contents: []*PortableItem{portable("toolkit", "toolkit", 4.0, SlotNone, "toolkit", "kit")},
			},
			&StorageUnit{
				FixedObject: FixedObject{Object: Object{
					ID:       "cabinet",
					Name:     "medical cabinet",
					Keywords: []string{"cabinet", "medical cabinet", "storage"},
				}},
				Open:            true,
				Capacity:        2,
				OpenDescription: "It smells of antiseptic.",
			},
		},
	}
	w.Rooms["corridor"] = &Room{
		ID:         "corridor",
		Name:       "Corridor",
		Background: "img/corridor.png",
		Dimensions: Dimensions{Length: 10, Width: 2, Height: 2.5},
		Exits: []*Exit{
			{Key: "crew quarters", Target: "crew_quarters", Direction: "fore"},
			{Key: "galley", Target: "galley", Label: "Galley", DoorID: "d_galley", Shortcuts: []string{"kitchen"}},
			{Key: "bridge", Target: "bridge", Label: "Bridge", DoorID: "d_bridge", Direction: "up"},
			{Key: "cargo bay", Target: "cargo_bay", DoorID: "d_cargo", Shortcuts: []string{"cargo"}},
		},
	}
	w.Rooms["galley"] = &Room{
		ID:         "galley",
		Name:       "Galley",
		Background: "img/galley.png",
		Dimensions: Dimensions{Length: 5, Width: 4, Height: 2.5},
		Exits:      []*Exit{{Key: "corridor", Target: "corridor", DoorID: "d_galley"}},
	}
	w.Rooms["bridge"] = &Room{
		ID:         "bridge",
		Name:       "Bridge",
		Background: "img/bridge.png",
		Dimensions: Dimensions{Length: 6, Width: 6, Height: 3},
		Exits:      []*Exit{{Key: "corridor", Target: "corridor", DoorID: "d_bridge"}},
	}
	w.Rooms["cargo_bay"] = &Room{
		ID:         "cargo_bay",
		Name:       "Cargo Bay",
		Background: "img/cargo.png",
		Dimensions: Dimensions{Length: 12, Width: 8, Height: 5},
		CargoHold:  true,
		Exits:      []*Exit{{Key: "corridor", Target: "corridor", DoorID: "d_cargo"}},
	}

	addDoor(w, &Door{ID: "d_galley", Rooms: [2]string{"corridor", "galley"}, Locked: true, Security: SecurityKeycardLow, Images: doorImages("galley")})
	addDoor(w, &Door{ID: "d_bridge", Rooms: [2]string{"corridor", "bridge"}, Locked: true, Security: SecurityKeycardHighPIN, PIN: "1234", Images: doorImages("bridge"), LockedText: "The bridge door is sealed."})
	addDoor(w, &Door{ID: "d_cargo", Rooms: [2]string{"corridor", "cargo_bay"}, Locked: true, Security: SecurityKeycardHigh, Images: doorImages("cargo")})

	return w
}

// newTestState creates a State over testWorld that uses a manual scheduler and
// default tuning.
func newTestState(t *testing.T, p Presenter) (*State, *sched.Manual) {
	t.Helper()

	clock := sched.NewManual()
	tune := tuning.Defaults()
	gs, err := New(testWorld(), Options{
		Presenter: p,
		Scheduler: clock,
		Tuning:    &tune,
		Rand:      rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	return gs, clock
}

func giveItem(t *testing.T, gs *State, id string) *PortableItem {
	t.Helper()
	it, err := gs.World.NewItem(id)
	require.NoError(t, err)
	require.NoError(t, gs.Player.Add(it))
	return it
}

func Test_World_NewItem(t *testing.T) {
	testCases := []struct {
		name      string
		id        string
		expectErr bool
	}{
		{name: "world template", id: ItemLowSecCard},
		{name: "builtin template", id: ItemHighSecCardDamaged},
		{name: "unknown", id: "flux_capacitor", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := testWorld()

			actual, err := w.NewItem(tc.id)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.id, actual.ID)

			second, _ := w.NewItem(tc.id)
			assert.NotSame(actual, second)
		})
	}
}

func Test_World_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(w *World)
		expectErr bool
	}{
		{name: "valid", mutate: func(w *World) {}},
		{name: "missing start", mutate: func(w *World) { w.Start = "airlock" }, expectErr: true},
		{name: "exit to nowhere", mutate: func(w *World) {
			w.Rooms["galley"].Exits = append(w.Rooms["galley"].Exits, &Exit{Key: "vent", Target: "vents"})
		}, expectErr: true},
		{name: "exit with unknown door", mutate: func(w *World) {
			w.Rooms["galley"].Exits[0].DoorID = "d_nope"
		}, expectErr: true},
		{name: "door with one panel", mutate: func(w *World) {
			delete(w.Doors["d_galley"].Panels, "galley")
		}, expectErr: true},
		{name: "PIN door without PIN", mutate: func(w *World) {
			w.Doors["d_bridge"].PIN = ""
		}, expectErr: true},
		{name: "PIN with letters", mutate: func(w *World) {
			w.Doors["d_bridge"].PIN = "AB12"
		}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := testWorld()
			tc.mutate(w)

			err := w.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Dimensions_Volume(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(30.0, Dimensions{Length: 4, Width: 3, Height: 2.5}.Volume(), 1e-9)
}
