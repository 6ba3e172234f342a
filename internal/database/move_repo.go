package database

import (
	"database/sql"

	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/moves"
)

// MoveRepository handles dance move catalog database operations
type MoveRepository struct {
	db *sql.DB
}

// NewMoveRepository creates a new move repository
func NewMoveRepository(db *sql.DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Seed inserts the built-in move catalog, updating rows that already
// exist so catalog changes propagate on startup.
func (r *MoveRepository) Seed() error {
	query := `INSERT INTO moves (move_id, name, difficulty, body_part, default_beats, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(move_id) DO UPDATE SET
			name=excluded.name, difficulty=excluded.difficulty,
			body_part=excluded.body_part, default_beats=excluded.default_beats,
			description=excluded.description`

	for _, m := range moves.Catalog {
		if _, err := r.db.Exec(query,
			m.ID, m.Name, m.Difficulty, m.BodyPart, m.DefaultBeats, m.Description,
		); err != nil {
			return err
		}
	}

	return nil
}

// GetAll returns all moves from the database
func (r *MoveRepository) GetAll() ([]moves.Move, error) {
	query := `SELECT move_id, name,
		COALESCE(difficulty, 1) as difficulty,
		COALESCE(body_part, '') as body_part,
		COALESCE(default_beats, 4) as default_beats,
		COALESCE(description, '') as description
		FROM moves ORDER BY difficulty, name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []moves.Move
	for rows.Next() {
		var m moves.Move
		err := rows.Scan(&m.ID, &m.Name, &m.Difficulty, &m.BodyPart, &m.DefaultBeats, &m.Description)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	return result, nil
}

// GetByID returns a move by its ID
func (r *MoveRepository) GetByID(moveID string) (*moves.Move, error) {
	query := `SELECT move_id, name,
		COALESCE(difficulty, 1) as difficulty,
		COALESCE(body_part, '') as body_part,
		COALESCE(default_beats, 4) as default_beats,
		COALESCE(description, '') as description
		FROM moves WHERE move_id = ?`

	var m moves.Move
	err := r.db.QueryRow(query, moveID).Scan(
		&m.ID, &m.Name, &m.Difficulty, &m.BodyPart, &m.DefaultBeats, &m.Description,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}
