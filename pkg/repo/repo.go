package repo

import (
	"github.com/AlexanderThaller/tack/pkg/object"
)

// Repo represents an opened tack repository.
type Repo struct {
	RootDir string        // working directory root
	TackDir string        // .tack/ directory
	Store   *object.Store // content-addressed object store
}
