package dsw

// File marshaledtypes.go holds the raw shapes that DSW files decode into. Both
// TOML and YAML files decode into the same types.

type topLevelManifest struct {
	Format string   `toml:"format" yaml:"format"`
	Type   string   `toml:"type" yaml:"type"`
	Files  []string `toml:"files" yaml:"files"`
}

// topLevelWorldData is the top-level structure containing all keys in a
// complete DSW 'DATA' type file.
type topLevelWorldData struct {
	Format      string       `toml:"format" yaml:"format"`
	Type        string       `toml:"type" yaml:"type"`
	World       world        `toml:"world" yaml:"world"`
	Items       []item       `toml:"items" yaml:"items"`
	Rooms       []room       `toml:"rooms" yaml:"rooms"`
	Connections []connection `toml:"connections" yaml:"connections"`
}

// merge appends the records of other onto td. Only one file may set each of
// the world keys.
func (td *topLevelWorldData) merge(other topLevelWorldData) error {
	if other.World.Start != "" {
		if td.World.Start != "" {
			return errDuplicateWorldKey("start", td.World.Start)
		}
		td.World.Start = other.World.Start
	}
	if other.World.Player != "" {
		if td.World.Player != "" {
			return errDuplicateWorldKey("player", td.World.Player)
		}
		td.World.Player = other.World.Player
	}
	if other.World.Ship != "" {
		if td.World.Ship != "" {
			return errDuplicateWorldKey("ship", td.World.Ship)
		}
		td.World.Ship = other.World.Ship
	}
	td.World.StartingItems = append(td.World.StartingItems, other.World.StartingItems...)
	td.Items = append(td.Items, other.Items...)
	td.Rooms = append(td.Rooms, other.Rooms...)
	td.Connections = append(td.Connections, other.Connections...)
	return nil
}

type world struct {
	Start         string   `toml:"start" yaml:"start"`
	Player        string   `toml:"player" yaml:"player"`
	Ship          string   `toml:"ship" yaml:"ship"`
	StartingItems []string `toml:"starting_items" yaml:"starting_items"`
}

type item struct {
	ID              string   `toml:"id" yaml:"id"`
	Type            string   `toml:"type" yaml:"type"`
	Name            string   `toml:"name" yaml:"name"`
	Description     string   `toml:"description" yaml:"description"`
	ExamineText     string   `toml:"examine_text" yaml:"examine_text"`
	Keywords        []string `toml:"keywords" yaml:"keywords"`
	Mass            float64  `toml:"mass" yaml:"mass"`
	EquipSlot       string   `toml:"equip_slot" yaml:"equip_slot"`
	Capacity        float64  `toml:"capacity" yaml:"capacity"`
	Open            bool     `toml:"open" yaml:"open"`
	OpenDescription string   `toml:"open_description" yaml:"open_description"`
	Contents        []string `toml:"contents" yaml:"contents"`
}

type dimensions struct {
	Length float64 `toml:"length" yaml:"length"`
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

type exit struct {
	Key       string   `toml:"key" yaml:"key"`
	Target    string   `toml:"target" yaml:"target"`
	Label     string   `toml:"label" yaml:"label"`
	Direction string   `toml:"direction" yaml:"direction"`
	Shortcuts []string `toml:"shortcuts" yaml:"shortcuts"`
}

type room struct {
	ID          string     `toml:"id" yaml:"id"`
	Name        string     `toml:"name" yaml:"name"`
	Description []string   `toml:"description" yaml:"description"`
	Background  string     `toml:"background" yaml:"background"`
	Dimensions  dimensions `toml:"dimensions" yaml:"dimensions"`
	Objects     []string   `toml:"objects" yaml:"objects"`
	CargoHold   bool       `toml:"cargo_hold" yaml:"cargo_hold"`
	Exits       []exit     `toml:"exits" yaml:"exits"`
}

type panel struct {
	ID             string   `toml:"id" yaml:"id"`
	Side           string   `toml:"side" yaml:"side"`
	Damaged        bool     `toml:"damaged" yaml:"damaged"`
	RepairProgress *float64 `toml:"repair_progress" yaml:"repair_progress"`
}

type connection struct {
	ID                string   `toml:"id" yaml:"id"`
	Rooms             []string `toml:"rooms" yaml:"rooms"`
	Locked            bool     `toml:"locked" yaml:"locked"`
	SecurityLevel     int      `toml:"security_level" yaml:"security_level"`
	PIN               string   `toml:"pin" yaml:"pin"`
	OpenImage         string   `toml:"open_image" yaml:"open_image"`
	LockedImage       string   `toml:"locked_image" yaml:"locked_image"`
	PanelImage        string   `toml:"panel_image" yaml:"panel_image"`
	PanelImageDamaged string   `toml:"panel_image_damaged" yaml:"panel_image_damaged"`
	LockedText        string   `toml:"locked_text" yaml:"locked_text"`
	Panels            []panel  `toml:"panels" yaml:"panels"`
}
