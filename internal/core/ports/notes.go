package ports

// NotesStore persists what a user records about a design: its free-text
// description and its hand-picked representative model.
//
//go:generate mockgen -source=notes.go -destination=mocks/mock_notes.go -package=mocks
type NotesStore interface {
	// Load returns the notes stored in dir, or an empty string if there are none.
	Load(dir string) (string, error)

	// Save stores notes in dir. Empty notes remove the stored file.
	Save(dir, notes string) error

	// LoadRepresentative returns the file name of the representative model
	// stored in dir, or an empty string if none was chosen.
	LoadRepresentative(dir string) (string, error)

	// SaveRepresentative stores the representative model's file name in dir.
	// An empty name removes the stored choice.
	SaveRepresentative(dir, name string) error
}
