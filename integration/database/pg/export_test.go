package pg

import "github.com/google/uuid"

func SetIDGenerator(s *SubmissionStore, fn func() uuid.UUID) {
	s.newID = fn
}

var MigrationsFS = migrationsFS
