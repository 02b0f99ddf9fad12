// Package prompt reads the model rates from an interactive console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/sirsim/internal/logging"
	"github.com/san-kum/sirsim/internal/models"
)

var (
	ErrOutOfRange = errors.New("rate outside [0, 1]")
	ErrNotANumber = errors.New("rate is not a number")
	ErrNoInput    = errors.New("input closed before a valid rate was read")
)

const (
	InfectionRateLabel = "infection rate (b)"
	RecoveryRateLabel  = "recovery rate (k)"
)

var log = logging.For("prompt")

// Prompter asks for rates on out and reads answers line by line from in.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// ParseRate accepts a decimal number in [0, 1].
func ParseRate(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%q: %w", strings.TrimSpace(text), ErrNotANumber)
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%g: %w", v, ErrOutOfRange)
	}
	return v, nil
}

// ReadRate keeps prompting until a valid rate is entered. It only fails
// when the input runs out.
func (p *Prompter) ReadRate(label string) (float64, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	for {
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, fmt.Errorf("reading %s: %w", label, err)
			}
			return 0, fmt.Errorf("reading %s: %w", label, ErrNoInput)
		}

		v, err := ParseRate(p.scanner.Text())
		if err == nil {
			return v, nil
		}
		log.WithError(err).Debugf("rejected %s", label)
		fmt.Fprintf(p.out, "invalid value. re-enter %s: ", label)
	}
}

// ReadParams asks for the infection rate and then the recovery rate.
func (p *Prompter) ReadParams(n float64) (models.Params, error) {
	b, err := p.ReadRate(InfectionRateLabel)
	if err != nil {
		return models.Params{}, err
	}
	k, err := p.ReadRate(RecoveryRateLabel)
	if err != nil {
		return models.Params{}, err
	}
	return models.Params{N: n, B: b, K: k}, nil
}
