package tracker

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrorKind classifies configuration errors
type ErrorKind int

const (
	NoChannels ErrorKind = iota
	EmptyTrack
	UnsupportedNote
	ZeroDuration
	BadTickRate
)

var (
	ErrNoChannels      = errors.New("song has no channels")
	ErrEmptyTrack      = errors.New("track is empty")
	ErrUnsupportedNote = errors.New("note not in frequency table")
	ErrZeroDuration    = errors.New("duration has zero ticks")
	ErrBadTickRate     = errors.New("tick rate must be positive")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case NoChannels:
		return ErrNoChannels
	case EmptyTrack:
		return ErrEmptyTrack
	case UnsupportedNote:
		return ErrUnsupportedNote
	case ZeroDuration:
		return ErrZeroDuration
	case BadTickRate:
		return ErrBadTickRate
	}
	return errors.New("unknown configuration error")
}

// ConfigError is a problem in song data found before playback starts.
// Channel and Step are -1 when they do not apply.
type ConfigError struct {
	Kind     ErrorKind
	Channel  int
	Step     int
	Note     Note
	Duration Duration
}

func (e *ConfigError) Error() string {
	var loc string
	switch {
	case e.Channel >= 0 && e.Step >= 0:
		loc = fmt.Sprintf("channel %d step %d: ", e.Channel+1, e.Step)
	case e.Channel >= 0:
		loc = fmt.Sprintf("channel %d: ", e.Channel+1)
	}
	msg := e.Kind.sentinel().Error()
	switch e.Kind {
	case UnsupportedNote:
		msg = fmt.Sprintf("%s: %s", msg, e.Note)
	case ZeroDuration:
		msg = fmt.Sprintf("%s: %s", msg, e.Duration)
	}
	return loc + msg
}

func (e *ConfigError) Unwrap() error {
	return e.Kind.sentinel()
}

// ValidationError collects every problem found in one validation pass
type ValidationError struct {
	Problems []*ConfigError
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid song: " + e.Problems[0].Error()
	}
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("invalid song (%d problems): %s", len(e.Problems), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}

// Validate checks every channel of the song against its tuning. It returns
// nil or a *ValidationError listing all problems.
func Validate(s *Song) error {
	var problems []*ConfigError

	if s.TickRate <= 0 || math.IsNaN(s.TickRate) || math.IsInf(s.TickRate, 0) {
		problems = append(problems, &ConfigError{Kind: BadTickRate, Channel: -1, Step: -1})
	}
	if len(s.Channels) == 0 {
		problems = append(problems, &ConfigError{Kind: NoChannels, Channel: -1, Step: -1})
	}
	for ch, track := range s.Channels {
		problems = append(problems, validateTrack(ch, track, s.Tuning)...)
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// ValidateTrack checks a single track. ch is used for error locations.
func ValidateTrack(ch int, track Track, tuning *FrequencyTable) error {
	problems := validateTrack(ch, track, tuning)
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func validateTrack(ch int, track Track, tuning *FrequencyTable) []*ConfigError {
	if len(track) == 0 {
		return []*ConfigError{{Kind: EmptyTrack, Channel: ch, Step: -1}}
	}
	var problems []*ConfigError
	for i, step := range track {
		if _, ok := tuning.Lookup(step.Note); !ok {
			problems = append(problems, &ConfigError{Kind: UnsupportedNote, Channel: ch, Step: i, Note: step.Note})
		}
		if step.Duration.Ticks() <= 0 {
			problems = append(problems, &ConfigError{Kind: ZeroDuration, Channel: ch, Step: i, Duration: step.Duration})
		}
	}
	return problems
}
