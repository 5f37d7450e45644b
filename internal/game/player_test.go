package game

import (
	"errors"
	"testing"

	"github.com/dekarrin/darkstar/internal/dserrors"
	"github.com/stretchr/testify/assert"
)

func Test_Player_Add(t *testing.T) {
	testCases := []struct {
		name        string
		carrying    []*PortableItem
		add         *PortableItem
		expectErr   error
		expectMsg   string
		expectCount int
	}{
		{
			name:        "fits",
			add:         portable("wrench", "wrench", 1.5, SlotNone),
			expectCount: 1,
		},
		{
			name:        "exactly at the limit",
			carrying:    []*PortableItem{portable("toolkit", "toolkit", 9.5, SlotNone)},
			add:         portable("wrench", "wrench", 0.5, SlotNone),
			expectCount: 2,
		},
		{
			name:        "decimal sums do not spuriously overflow",
			carrying:    []*PortableItem{portable("a", "a", 9.7, SlotNone), portable("b", "b", 0.2, SlotNone)},
			add:         portable("c", "c", 0.1, SlotNone),
			expectCount: 3,
		},
		{
			name:        "too heavy",
			carrying:    []*PortableItem{portable("toolkit", "toolkit", 9, SlotNone)},
			add:         portable("wrench", "wrench", 1.5, SlotNone),
			expectErr:   ErrTooHeavy,
			expectMsg:   "Too heavy! You can carry 1.0 kg more.",
			expectCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			p := NewPlayer("Jack Harrow", 10)
			p.Inventory = append(p.Inventory, tc.carrying...)

			err := p.Add(tc.add)

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				assert.Equal(tc.expectMsg, dserrors.GameMessage(err))
			} else {
				assert.NoError(err)
			}
			assert.Len(p.Inventory, tc.expectCount)
		})
	}
}

func Test_Player_Remove(t *testing.T) {
	assert := assert.New(t)
	p := NewPlayer("Jack Harrow", 10)
	wrench := portable("wrench", "wrench", 1.5, SlotNone)
	p.Inventory = []*PortableItem{wrench}

	assert.Nil(p.Remove("spanner"))
	assert.Same(wrench, p.Remove("wrench"))
	assert.Empty(p.Inventory)
	assert.False(p.Has("wrench"))
}

func Test_Player_Equip(t *testing.T) {
	testCases := []struct {
		name       string
		maxMass    float64
		carrying   []*PortableItem
		worn       []*PortableItem
		equip      string
		expect     string
		expectErr  error
		expectHead string
		expectMass float64
	}{
		{
			name:       "into empty slot",
			maxMass:    10,
			carrying:   []*PortableItem{portable("helmet", "helmet", 2, SlotHead)},
			equip:      "helmet",
			expect:     "You equip the helmet.",
			expectHead: "helmet",
			expectMass: 0,
		},
		{
			name:       "bounces the old item back",
			maxMass:    10,
			carrying:   []*PortableItem{portable("cap", "cap", 0.5, SlotHead)},
			worn:       []*PortableItem{portable("helmet", "helmet", 2, SlotHead)},
			equip:      "cap",
			expect:     "You equip the cap.",
			expectHead: "cap",
			expectMass: 2,
		},
		{
			name:    "bounce would overflow",
			maxMass: 3,
			carrying: []*PortableItem{
				portable("cap", "cap", 0.5, SlotHead),
				portable("toolkit", "toolkit", 2.5, SlotNone),
			},
			worn:       []*PortableItem{portable("helmet", "helmet", 2, SlotHead)},
			equip:      "cap",
			expect:     "Cannot unequip helmet: inventory too full.",
			expectErr:  ErrTooHeavy,
			expectHead: "helmet",
			expectMass: 3,
		},
		{
			name:       "no slot",
			maxMass:    10,
			carrying:   []*PortableItem{portable("wrench", "wrench", 1.5, SlotNone)},
			equip:      "wrench",
			expect:     "Cannot equip wrench: invalid slot.",
			expectErr:  ErrInvalidSlot,
			expectMass: 1.5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			p := NewPlayer("Jack Harrow", tc.maxMass)
			p.Inventory = append(p.Inventory, tc.carrying...)
			for _, w := range tc.worn {
				p.Equipped[w.EquipSlot] = w
			}

			msg, err := p.Equip(p.Find(tc.equip))

			if tc.expectErr != nil {
				assert.True(errors.Is(err, tc.expectErr))
				assert.Equal(tc.expect, dserrors.GameMessage(err))
			} else {
				assert.NoError(err)
				assert.Equal(tc.expect, msg)
			}

			if tc.expectHead == "" {
				assert.Nil(p.Equipped[SlotHead])
			} else if assert.NotNil(p.Equipped[SlotHead]) {
				assert.Equal(tc.expectHead, p.Equipped[SlotHead].ID)
			}
			assert.InDelta(tc.expectMass, p.CarryMass(), 1e-9)
		})
	}
}

func Test_Player_Unequip(t *testing.T) {
	testCases := []struct {
		name      string
		maxMass   float64
		carrying  []*PortableItem
		slot      Slot
		expect    string
		expectErr error
		stillWorn bool
	}{
		{name: "success", maxMass: 10, slot: SlotHead, expect: "You remove the helmet."},
		{name: "nothing there", maxMass: 10, slot: SlotFeet, expect: "Nothing equipped in feet.", expectErr: ErrNotFound, stillWorn: true},
		{name: "invalid slot", maxMass: 10, slot: Slot("tail"), expect: "Invalid slot: tail", expectErr: ErrInvalidSlot, stillWorn: true},
		{
			name:      "too full",
			maxMass:   3,
			carrying:  []*PortableItem{portable("toolkit", "toolkit", 2.5, SlotNone)},
			slot:      SlotHead,
			expect:    "Cannot unequip helmet: Too heavy! You can carry 0.5 kg more.",
			expectErr: ErrTooHeavy,
			stillWorn: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			p := NewPlayer("Jack Harrow", tc.maxMass)
			p.Inventory = append(p.Inventory, tc.carrying...)
			helmet := portable("helmet", "helmet", 2, SlotHead)
			p.Equipped[SlotHead] = helmet

			msg, err := p.Unequip(tc.slot)

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				assert.Equal(tc.expect, dserrors.GameMessage(err))
			} else {
				assert.NoError(err)
				assert.Equal(tc.expect, msg)
				assert.True(p.Has("helmet"))
			}
			assert.Equal(tc.stillWorn, p.Equipped[SlotHead] == helmet)
		})
	}
}

func Test_Player_EquippedSummary(t *testing.T) {
	assert := assert.New(t)
	p := NewPlayer("Jack Harrow", 10)
	p.Equipped[SlotHead] = portable("helmet", "helmet", 2, SlotHead)

	actual := p.EquippedSummary()

	assert.Equal("Body: nothing\nTorso: nothing\nWaist: nothing\nFeet: nothing\nHead: helmet", actual)
}
