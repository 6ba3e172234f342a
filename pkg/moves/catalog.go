package moves

// Move describes a dance move in the static catalog.
type Move struct {
	ID           string `json:"move_id"`
	Name         string `json:"name"`
	Difficulty   int    `json:"difficulty"`
	BodyPart     string `json:"body_part"`
	DefaultBeats int    `json:"default_beats"`
	Description  string `json:"description"`
}

// Catalog is the fixed set of moves available to choreography
// generation. IDs here are the only valid moveId values in a routine.
var Catalog = []Move{
	{ID: "step_touch", Name: "Step Touch", Difficulty: 1, BodyPart: "Legs", DefaultBeats: 8, Description: "Step to the side and touch feet together"},
	{ID: "body_roll", Name: "Body Roll", Difficulty: 2, BodyPart: "Full Body", DefaultBeats: 8, Description: "Roll your body in a wave motion from chest to hips"},
	{ID: "arm_wave", Name: "Arm Wave", Difficulty: 2, BodyPart: "Arms", DefaultBeats: 8, Description: "Create a wave motion from one hand across to the other"},
	{ID: "hip_sway", Name: "Hip Sway", Difficulty: 1, BodyPart: "Hips", DefaultBeats: 4, Description: "Sway your hips side to side in rhythm"},
	{ID: "clap", Name: "Clap", Difficulty: 1, BodyPart: "Arms", DefaultBeats: 4, Description: "Clap your hands together on the beat"},
	{ID: "turn", Name: "Turn", Difficulty: 2, BodyPart: "Full Body", DefaultBeats: 8, Description: "Spin around in a full circle"},
	{ID: "jump", Name: "Jump", Difficulty: 2, BodyPart: "Full Body", DefaultBeats: 4, Description: "Jump up with energy on the beat"},
	{ID: "slide", Name: "Slide", Difficulty: 1, BodyPart: "Legs", DefaultBeats: 4, Description: "Slide your feet smoothly to one side"},
	{ID: "shoulder_pop", Name: "Shoulder Pop", Difficulty: 2, BodyPart: "Arms", DefaultBeats: 4, Description: "Pop your shoulders up and down alternately"},
	{ID: "snap", Name: "Snap", Difficulty: 1, BodyPart: "Arms", DefaultBeats: 4, Description: "Snap your fingers to the beat"},
	{ID: "point", Name: "Point", Difficulty: 1, BodyPart: "Arms", DefaultBeats: 4, Description: "Point in different directions with style"},
	{ID: "stomp", Name: "Stomp", Difficulty: 1, BodyPart: "Legs", DefaultBeats: 4, Description: "Stomp your feet powerfully on the beat"},
	{ID: "groove", Name: "Groove", Difficulty: 1, BodyPart: "Full Body", DefaultBeats: 8, Description: "Feel the beat and move your whole body freely"},
	{ID: "sway", Name: "Sway", Difficulty: 1, BodyPart: "Full Body", DefaultBeats: 8, Description: "Gently sway your body side to side"},
	{ID: "punch", Name: "Punch", Difficulty: 2, BodyPart: "Arms", DefaultBeats: 4, Description: "Punch the air with power"},
	{ID: "shimmy", Name: "Shimmy", Difficulty: 2, BodyPart: "Arms", DefaultBeats: 8, Description: "Shake your shoulders rapidly back and forth"},
	{ID: "twist", Name: "Twist", Difficulty: 1, BodyPart: "Hips", DefaultBeats: 8, Description: "Twist your hips and feet like the classic dance"},
}

// ByID returns the move with the given ID, or nil.
func ByID(id string) *Move {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// ByDifficulty returns the IDs of all moves at the given difficulty.
func ByDifficulty(difficulty int) []string {
	var ids []string
	for _, m := range Catalog {
		if m.Difficulty == difficulty {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// ByBodyPart returns the IDs of all moves targeting the given body part.
func ByBodyPart(bodyPart string) []string {
	var ids []string
	for _, m := range Catalog {
		if m.BodyPart == bodyPart {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// EasyMoves returns all difficulty-1 move IDs.
func EasyMoves() []string {
	return ByDifficulty(1)
}

// MediumMoves returns all difficulty-2 move IDs.
func MediumMoves() []string {
	return ByDifficulty(2)
}
