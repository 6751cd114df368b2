// Package repl implements the interactive loop that reads integer pairs and
// prints their modular multiplicative inverse.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kbolino/modinv"
	"github.com/kbolino/modinv/config"
	"github.com/kbolino/modinv/internal/logger"
)

// Errors reported for input lines that cannot be evaluated.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrTooFewValues   = fmt.Errorf("%w: two values are required", ErrMalformedInput)
)

// DefaultMaxLineLength bounds an input line when REPLConfig leaves it unset.
const DefaultMaxLineLength = 1 << 20

const banner = "Please input the two values you would wish to get the Modular Multiplicative Inverse for: \n\n" +
	"example: 11 26 \n\n"

// TokenError reports a token that is not a base-10 int64.
type TokenError struct {
	Token string
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: %q is not an integer: %v", ErrMalformedInput, e.Token, e.Err)
}

func (e *TokenError) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}

// ParseLine parses a line of whitespace-separated integers and returns the
// first two. Every token must parse, even those past the second, which are
// otherwise ignored.
func ParseLine(line string) (a, m int64, err error) {
	fields := strings.Fields(line)
	values := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, 0, &TokenError{Token: f, Err: err}
		}
		values = append(values, v)
	}
	if len(values) < 2 {
		return 0, 0, ErrTooFewValues
	}
	return values[0], values[1], nil
}

// Session is one run of the loop over an input stream.
type Session struct {
	banner  bool
	maxLine int
	log     *logger.Logger
}

// NewSession returns a session configured by cfg. A nil log discards logs.
func NewSession(cfg config.REPLConfig, log *logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	maxLine := cfg.MaxLineLength
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}
	return &Session{banner: cfg.Banner, maxLine: maxLine, log: log}
}

// Run reads lines from in until it is exhausted, writing one reply per line
// to out. Bad lines, including lines longer than the configured maximum,
// produce a message and the loop continues. Run returns nil
// at end of input, ctx.Err() if ctx is done before a line is handled, and any
// read or write error otherwise.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx = logger.WithTraceID(ctx, logger.GetTraceID(ctx))
	log := s.log.WithContext(ctx)
	log.Info("session started")

	if s.banner {
		if _, err := io.WriteString(out, banner); err != nil {
			return fmt.Errorf("writing banner: %w", err)
		}
	}

	lines := 0
	r := bufio.NewReader(in)
	for {
		line, tooLong, err := readLine(r, s.maxLine)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		lines++

		var reply string
		if tooLong {
			log.Warn("line too long", zap.Int("line", lines), zap.Int("max", s.maxLine))
			reply = fmt.Sprintf("Line exceeds %d bytes, skipped\n", s.maxLine)
		} else {
			reply = s.Eval(ctx, line)
		}
		if _, err := io.WriteString(out, reply); err != nil {
			return fmt.Errorf("writing reply: %w", err)
		}
	}

	log.Info("session ended", zap.Int("lines", lines))
	return nil
}

// Eval evaluates a single input line and returns the reply text.
func (s *Session) Eval(ctx context.Context, line string) string {
	log := s.log.WithContext(ctx)

	a, m, err := ParseLine(line)
	if err != nil {
		var tokErr *TokenError
		if errors.As(err, &tokErr) {
			log.Warn("malformed input", zap.String("line", line), zap.Error(err))
			return fmt.Sprintf("Not an integer: %q\n", tokErr.Token)
		}
		log.Debug("too few values", zap.String("line", line))
		return "Please input two values to continue\n"
	}

	x, err := modinv.TryModularInverse(a, m)
	switch {
	case errors.Is(err, modinv.ErrInvalidModulus):
		log.Debug("invalid modulus", zap.Int64("a", a), zap.Int64("m", m))
		return fmt.Sprintf("M.M.I can't be computed for %d mod %d: modulus must be positive\n\n", a, m)
	case err != nil:
		log.Debug("not invertible", zap.Int64("a", a), zap.Int64("m", m))
		return fmt.Sprintf("M.M.I can't be computed for %d mod %d\n\n", a, m)
	}
	log.Debug("inverse computed", zap.Int64("a", a), zap.Int64("m", m), zap.Int64("inverse", x))
	return fmt.Sprintf("The M.M.I of %d and %d ==> %d \n\n", a, m, x)
}

// readLine returns the next line of r without its terminator. A line longer
// than limit is consumed whole but only reported through tooLong. The last
// line need not end in a newline; io.EOF is returned only once r is empty.
func readLine(r *bufio.Reader, limit int) (line string, tooLong bool, err error) {
	var b strings.Builder
	started := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return b.String(), tooLong, nil
			}
			return "", false, err
		}
		started = true
		if !tooLong {
			if b.Len()+len(chunk) > limit {
				tooLong = true
				b.Reset()
			} else {
				b.Write(chunk)
			}
		}
		if !isPrefix {
			return b.String(), tooLong, nil
		}
	}
}
