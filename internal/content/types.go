package content

// PackFile is the file name of a module's block definitions.
const PackFile = "blocks.json"

// Pack is one module's block definitions, read from <root>/<module>/blocks.json.
// Textures are looked up in <root>/<module>/textures.
type Pack struct {
	Module string  `json:"module"`
	Blocks []Block `json:"blocks"`
}

// Block is a single block definition. Rotations and Flips are per face, in
// face order up, down, south, north, west, east; missing entries are 0.
type Block struct {
	Name      string    `json:"name"`
	DrawType  string    `json:"draw_type"`
	Textures  []string  `json:"textures"`
	Rotations []uint8   `json:"rotations"`
	Flips     []uint8   `json:"flips"`
	BlockBox  []float32 `json:"block_box"`
}
