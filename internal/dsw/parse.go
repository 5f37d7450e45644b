package dsw

import (
	"fmt"
	"strings"

	"github.com/dekarrin/darkstar/internal/game"
	"github.com/dekarrin/darkstar/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

var log logrus.FieldLogger = logging.Discard()

// SetLogger sets where the loader reports merge decisions. By default nothing
// is logged.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logging.Discard()
	}
	log = l
}

const (
	defaultPlayerName = "Jack Harrow"
	defaultShipName   = "Tempus Fugit"
)

const (
	itemTypePortable = "portable"
	itemTypeFixed    = "fixed"
	itemTypeStorage  = "storage"
)

type worldSymbols struct {
	roomIDs mapset.Set[string]
	itemIDs mapset.Set[string]
	connIDs mapset.Set[string]
}

// scanSymbols gathers every declared ID so references can be checked as soon
// as they are seen. Duplicate and blank IDs are rejected here.
func scanSymbols(dsw topLevelWorldData) (worldSymbols, error) {
	syms := worldSymbols{
		roomIDs: mapset.New[string](),
		itemIDs: mapset.New[string](),
		connIDs: mapset.New[string](),
	}

	for i, it := range dsw.Items {
		if it.ID == "" {
			return syms, fmt.Errorf("items[%d]: id must not be blank", i)
		}
		if syms.itemIDs.Has(it.ID) {
			return syms, fmt.Errorf("items[%q]: duplicate id", it.ID)
		}
		syms.itemIDs.Put(it.ID)
	}
	for i, r := range dsw.Rooms {
		if r.ID == "" {
			return syms, fmt.Errorf("rooms[%d]: id must not be blank", i)
		}
		if syms.roomIDs.Has(r.ID) {
			return syms, fmt.Errorf("rooms[%q]: duplicate id", r.ID)
		}
		syms.roomIDs.Put(r.ID)
	}
	for _, c := range dsw.Connections {
		if c.ID == "" {
			continue
		}
		if syms.connIDs.Has(c.ID) {
			return syms, fmt.Errorf("connections[%q]: duplicate id", c.ID)
		}
		syms.connIDs.Put(c.ID)
	}

	return syms, nil
}

// catalog holds the validated item records keyed by ID.
type catalog map[string]item

// instance creates a new game object for a placement of the catalog item
// with the given ID.
func (cat catalog) instance(id string) game.Interactable {
	it := cat[id]
	obj := game.Object{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		ExamineText: it.ExamineText,
		Keywords:    append([]string(nil), it.Keywords...),
	}

	switch it.Type {
	case itemTypeFixed:
		return &game.FixedObject{Object: obj}
	case itemTypeStorage:
		su := &game.StorageUnit{
			FixedObject:     game.FixedObject{Object: obj},
			Open:            it.Open,
			Capacity:        it.Capacity,
			OpenDescription: it.OpenDescription,
		}
		for _, c := range it.Contents {
			su.Contents = append(su.Contents, cat.portable(c))
		}
		return su
	default:
		return cat.portable(id)
	}
}

func (cat catalog) portable(id string) *game.PortableItem {
	it := cat[id]
	slot, _ := game.ParseSlot(it.EquipSlot)
	return &game.PortableItem{
		Object: game.Object{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			ExamineText: it.ExamineText,
			Keywords:    append([]string(nil), it.Keywords...),
		},
		Mass:      it.Mass,
		EquipSlot: slot,
	}
}

func parseWorldData(dsw topLevelWorldData) (*game.World, error) {
	symbols, err := scanSymbols(dsw)
	if err != nil {
		return nil, err
	}

	w := &game.World{
		Rooms:      make(map[string]*game.Room, len(dsw.Rooms)),
		Doors:      make(map[string]*game.Door),
		Items:      make(map[string]game.PortableItem),
		Start:      dsw.World.Start,
		PlayerName: dsw.World.Player,
		ShipName:   dsw.World.Ship,
	}
	if w.PlayerName == "" {
		w.PlayerName = defaultPlayerName
	}
	if w.ShipName == "" {
		w.ShipName = defaultShipName
	}

	cat := catalog{}
	for _, it := range dsw.Items {
		norm, err := normalizeItem(it)
		if err != nil {
			return nil, fmt.Errorf("items[%q]: %w", it.ID, err)
		}
		cat[it.ID] = norm
	}
	// contents can only be checked once every item is known.
	for _, it := range dsw.Items {
		if err := validateContents(cat[it.ID], cat); err != nil {
			return nil, fmt.Errorf("items[%q]: %w", it.ID, err)
		}
		if cat[it.ID].Type == itemTypePortable {
			w.Items[it.ID] = *cat.portable(it.ID)
		}
	}

	if !symbols.roomIDs.Has(dsw.World.Start) {
		return nil, fmt.Errorf("world: start: no room with id %q exists", dsw.World.Start)
	}
	for i, id := range dsw.World.StartingItems {
		if !symbols.itemIDs.Has(id) {
			return nil, fmt.Errorf("world: starting_items[%d]: no item with id %q exists", i, id)
		}
		if cat[id].Type != itemTypePortable {
			return nil, fmt.Errorf("world: starting_items[%d]: item %q is not portable", i, id)
		}
		w.StartingItems = append(w.StartingItems, cat.portable(id))
	}

	for _, r := range dsw.Rooms {
		room, err := parseRoom(r, cat, symbols)
		if err != nil {
			return nil, fmt.Errorf("rooms[%q]: %w", r.ID, err)
		}
		w.Rooms[room.ID] = room
	}

	if err := parseConnections(dsw.Connections, w, symbols); err != nil {
		return nil, err
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// normalizeItem checks the fields of a catalog record and fills in defaults.
func normalizeItem(it item) (item, error) {
	it.Type = strings.ToLower(strings.TrimSpace(it.Type))
	if it.Type == "" {
		it.Type = itemTypePortable
	}
	switch it.Type {
	case itemTypePortable, itemTypeFixed, itemTypeStorage:
	default:
		return it, fmt.Errorf("type: must be one of %q, %q, or %q", itemTypePortable, itemTypeFixed, itemTypeStorage)
	}

	if strings.TrimSpace(it.Name) == "" {
		return it, fmt.Errorf("name: must not be blank")
	}
	if it.ExamineText == "" {
		it.ExamineText = it.Description
	}
	if len(it.Keywords) == 0 {
		it.Keywords = []string{strings.ToLower(it.Name)}
	} else {
		kws := make([]string, 0, len(it.Keywords))
		for _, kw := range it.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		it.Keywords = kws
	}

	if it.Mass < 0 {
		return it, fmt.Errorf("mass: must not be negative")
	}
	if it.EquipSlot != "" {
		if it.Type != itemTypePortable {
			return it, fmt.Errorf("equip_slot: only portable items can be worn")
		}
		if _, ok := game.ParseSlot(it.EquipSlot); !ok {
			return it, fmt.Errorf("equip_slot: %q is not a valid slot", it.EquipSlot)
		}
	}

	if it.Type != itemTypeStorage {
		if len(it.Contents) > 0 {
			return it, fmt.Errorf("contents: only storage items can hold contents")
		}
		return it, nil
	}
	if it.Capacity < 0 {
		return it, fmt.Errorf("capacity: must not be negative")
	}
	return it, nil
}

func validateContents(it item, cat catalog) error {
	var total float64
	for i, id := range it.Contents {
		content, ok := cat[id]
		if !ok {
			return fmt.Errorf("contents[%d]: no item with id %q exists", i, id)
		}
		if content.Type != itemTypePortable {
			return fmt.Errorf("contents[%d]: item %q is not portable", i, id)
		}
		total += content.Mass
	}
	if total > it.Capacity+1e-9 {
		return fmt.Errorf("contents: total mass %.2f kg exceeds capacity %.2f kg", total, it.Capacity)
	}
	return nil
}

func parseRoom(r room, cat catalog, symbols worldSymbols) (*game.Room, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("name: must not be blank")
	}
	dims := game.Dimensions{Length: r.Dimensions.Length, Width: r.Dimensions.Width, Height: r.Dimensions.Height}
	if dims.Length <= 0 || dims.Width <= 0 || dims.Height <= 0 {
		return nil, fmt.Errorf("dimensions: length, width, and height must all be positive")
	}

	gr := &game.Room{
		ID:          r.ID,
		Name:        r.Name,
		Description: append([]string(nil), r.Description...),
		Background:  r.Background,
		Dimensions:  dims,
		CargoHold:   r.CargoHold,
		Panels:      map[string]*game.SecurityPanel{},
	}
	if gr.Background == "" {
		gr.Background = game.MissingImage
	}

	for i, id := range r.Objects {
		if !symbols.itemIDs.Has(id) {
			return nil, fmt.Errorf("objects[%d]: no item with id %q exists", i, id)
		}
		gr.AddObject(cat.instance(id))
	}

	keys := mapset.New[string]()
	for i, ex := range r.Exits {
		key := strings.ToLower(strings.TrimSpace(ex.Key))
		if key == "" {
			return nil, fmt.Errorf("exits[%d]: key must not be blank", i)
		}
		if keys.Has(key) {
			return nil, fmt.Errorf("exits[%q]: duplicate key", key)
		}
		keys.Put(key)
		if !symbols.roomIDs.Has(ex.Target) {
			return nil, fmt.Errorf("exits[%q]: target: no room with id %q exists", key, ex.Target)
		}
		if ex.Target == r.ID {
			return nil, fmt.Errorf("exits[%q]: target: exit leads back into the same room", key)
		}

		shortcuts := make([]string, 0, len(ex.Shortcuts))
		for _, sc := range ex.Shortcuts {
			if sc = strings.ToLower(strings.TrimSpace(sc)); sc != "" {
				shortcuts = append(shortcuts, sc)
			}
		}
		gr.Exits = append(gr.Exits, &game.Exit{
			Key:       key,
			Target:    ex.Target,
			Label:     ex.Label,
			Direction: strings.ToLower(strings.TrimSpace(ex.Direction)),
			Shortcuts: shortcuts,
		})
	}

	return gr, nil
}

// pairKey gives the same key for a pair of rooms in either order.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

func parseConnections(conns []connection, w *game.World, symbols worldSymbols) error {
	byPair := map[string]*game.Door{}
	var order []*game.Door

	for i, c := range conns {
		path := fmt.Sprintf("connections[%d]", i)
		if c.ID != "" {
			path = fmt.Sprintf("connections[%q]", c.ID)
		}

		if len(c.Rooms) != 2 {
			return fmt.Errorf("%s: rooms: must name exactly 2 rooms", path)
		}
		for _, r := range c.Rooms {
			if !symbols.roomIDs.Has(r) {
				return fmt.Errorf("%s: rooms: no room with id %q exists", path, r)
			}
		}
		if c.Rooms[0] == c.Rooms[1] {
			return fmt.Errorf("%s: rooms: must name 2 different rooms", path)
		}

		key := pairKey(c.Rooms[0], c.Rooms[1])
		door, seen := byPair[key]
		if seen {
			log.WithFields(logrus.Fields{
				"door":   door.ID,
				"record": path,
			}).Debug("merging connection record into existing door; only its panels are used")
		} else {
			var err error
			door, err = newDoor(c)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if _, dup := w.Doors[door.ID]; dup {
				return fmt.Errorf("%s: duplicate door id %q", path, door.ID)
			}
			byPair[key] = door
			order = append(order, door)
			w.Doors[door.ID] = door
		}

		for j, p := range c.Panels {
			if err := addPanel(door, p); err != nil {
				return fmt.Errorf("%s: panels[%d]: %w", path, j, err)
			}
		}
	}

	for _, door := range order {
		for _, side := range door.Rooms {
			if door.Panels[side] == nil {
				log.WithFields(logrus.Fields{
					"door": door.ID,
					"side": side,
				}).Debug("no panel record for side; adding a working one")
				door.Panels[side] = &game.SecurityPanel{
					ID:             door.ID + ":" + side,
					DoorID:         door.ID,
					Side:           side,
					Security:       door.Security,
					RepairProgress: 1,
				}
			}
			w.Rooms[side].Panels[door.ID] = door.Panels[side]

			// both rooms need an exit through the door; the first one to
			// the other room gets it.
			other := door.OtherRoom(side)
			found := false
			for _, ex := range w.Rooms[side].Exits {
				if ex.Target == other {
					ex.DoorID = door.ID
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("connections[%q]: room %q has no exit to %q", door.ID, side, other)
			}
		}
	}

	return nil
}

func newDoor(c connection) (*game.Door, error) {
	if c.SecurityLevel < int(game.SecurityNone) || c.SecurityLevel > int(game.SecurityKeycardHighPIN) {
		return nil, fmt.Errorf("security_level: must be between %d and %d", game.SecurityNone, game.SecurityKeycardHighPIN)
	}
	level := game.SecurityLevel(c.SecurityLevel)
	if level.RequiresPIN() && c.PIN == "" {
		return nil, fmt.Errorf("pin: security level %s requires a PIN", level)
	}
	if c.PIN != "" && !game.ValidPIN(c.PIN) {
		return nil, fmt.Errorf("pin: must be numeric")
	}

	id := c.ID
	if id == "" {
		id = "door_" + c.Rooms[0] + "_" + c.Rooms[1]
	}

	return &game.Door{
		ID:       id,
		Rooms:    [2]string{c.Rooms[0], c.Rooms[1]},
		Locked:   c.Locked,
		Security: level,
		PIN:      c.PIN,
		Images: game.DoorImages{
			Open:         imageOrMissing(c.OpenImage),
			Locked:       imageOrMissing(c.LockedImage),
			Panel:        imageOrMissing(c.PanelImage),
			PanelDamaged: imageOrMissing(c.PanelImageDamaged),
		},
		LockedText: c.LockedText,
		Panels:     map[string]*game.SecurityPanel{},
	}, nil
}

func addPanel(door *game.Door, p panel) error {
	if !door.Connects(p.Side) {
		return fmt.Errorf("side: %q is not a room joined by door %q", p.Side, door.ID)
	}
	if door.Panels[p.Side] != nil {
		return fmt.Errorf("side: door %q already has a panel on the %q side", door.ID, p.Side)
	}

	progress := 1.0
	if p.Damaged {
		progress = 0
	}
	if p.RepairProgress != nil {
		progress = *p.RepairProgress
		if progress < 0 || progress > 1 {
			return fmt.Errorf("repair_progress: must be between 0 and 1")
		}
	}

	id := p.ID
	if id == "" {
		id = door.ID + ":" + p.Side
	}
	door.Panels[p.Side] = &game.SecurityPanel{
		ID:             id,
		DoorID:         door.ID,
		Side:           p.Side,
		Security:       door.Security,
		Broken:         p.Damaged,
		RepairProgress: progress,
	}
	return nil
}

func imageOrMissing(path string) string {
	if path == "" {
		return game.MissingImage
	}
	return path
}
