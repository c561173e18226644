// Package archive persists completed interview results and hiring decisions in a bbolt file.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/interview"
	"github.com/spigell/hr-interviewer/internal/logger"
	"github.com/spigell/hr-interviewer/internal/scoring"
)

var (
	resultsBucket   = []byte("interview_results")
	decisionsBucket = []byte("candidate_decisions")
)

// ErrNotFound is returned when no record exists for the key.
var ErrNotFound = errors.New("archive record not found")

// DecisionRecord is the last hiring decision taken on a candidate.
type DecisionRecord struct {
	CandidateID string                  `json:"candidateId"`
	Decision    scoring.Decision        `json:"decision"`
	Status      scoring.CandidateStatus `json:"status"`
	Notes       string                  `json:"notes,omitempty"`
	DecidedAt   time.Time               `json:"decidedAt"`
}

// Archive is a bbolt backed store. It is safe for concurrent use.
type Archive struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open opens or creates the archive file at path.
func Open(path string, log *zap.Logger) (*Archive, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("archive path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening archive %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{resultsBucket, decisionsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing archive buckets: %w", err)
	}

	return &Archive{db: db, logger: logger.WithFields(log, zap.String("archive", path))}, nil
}

// Close releases the archive file.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveResult stores the result under its session id, replacing any previous version.
func (a *Archive) SaveResult(result *interview.Result) error {
	if result == nil || result.SessionID == "" {
		return errors.New("result with a session id is required")
	}

	enc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result %s: %w", result.SessionID, err)
	}

	err = a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(resultsBucket).Put([]byte(result.SessionID), enc)
	})
	if err != nil {
		return fmt.Errorf("saving result %s: %w", result.SessionID, err)
	}

	a.logger.Debug("result archived", logger.SessionFields(result.SessionID, result.CandidateID)...)
	return nil
}

// Result returns the archived result of a session.
func (a *Archive) Result(sessionID string) (*interview.Result, error) {
	var out *interview.Result
	err := a.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(resultsBucket).Get([]byte(sessionID))
		if v == nil {
			return fmt.Errorf("result %s: %w", sessionID, ErrNotFound)
		}
		var r interview.Result
		if err := json.Unmarshal(v, &r); err != nil {
			return fmt.Errorf("decoding result %s: %w", sessionID, err)
		}
		out = &r
		return nil
	})
	return out, err
}

// Results returns every archived result, oldest first. Malformed records are skipped.
func (a *Archive) Results() ([]*interview.Result, error) {
	var out []*interview.Result
	err := a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(resultsBucket).ForEach(func(k, v []byte) error {
			var r interview.Result
			if err := json.Unmarshal(v, &r); err != nil {
				a.logger.Warn("skipping malformed archived result", zap.ByteString("key", k), zap.Error(err))
				return nil
			}
			out = append(out, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out, nil
}

// SaveDecision records the hiring decision of a candidate, replacing any previous one.
func (a *Archive) SaveDecision(rec DecisionRecord) error {
	if strings.TrimSpace(rec.CandidateID) == "" {
		return errors.New("candidate id is required")
	}

	enc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding decision for %s: %w", rec.CandidateID, err)
	}

	return a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(decisionsBucket).Put([]byte(rec.CandidateID), enc)
	})
}

// Decision returns the last decision recorded for a candidate.
func (a *Archive) Decision(candidateID string) (*DecisionRecord, error) {
	var out *DecisionRecord
	err := a.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(decisionsBucket).Get([]byte(candidateID))
		if v == nil {
			return fmt.Errorf("decision for %s: %w", candidateID, ErrNotFound)
		}
		var rec DecisionRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("decoding decision for %s: %w", candidateID, err)
		}
		out = &rec
		return nil
	})
	return out, err
}
