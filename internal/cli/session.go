package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/skyscout"
	"github.com/aretw0/skyscout/internal/presentation/tui"
	"github.com/aretw0/skyscout/pkg/autocomplete"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/search"
)

// DefaultSuggestionWait bounds how long a from/to command waits for suggestions.
const DefaultSuggestionWait = 15 * time.Second

const sessionHelp = `Commands:
  from <text> | to <text>       look up airports
  pick <from|to> <n>            select suggestion n
  swap                          exchange origin and destination
  oneway | roundtrip            trip type
  depart <YYYY-MM-DD>           departure date
  return <YYYY-MM-DD>           return date
  pax <adults|children|infants> <+|-|n>
  cabin <economy|business|first>
  sort <best|cheapest|fastest|departure>
  filter <stops n|airline name|clear>
  show                          current form
  search                        submit
  quit
`

var errQuit = errors.New("quit")

// Session is a line-driven front end over the controllers.
type Session struct {
	app      *skyscout.App
	renderer *tui.Renderer
	out      io.Writer
	clock    func() time.Time
	wait     time.Duration

	form   search.Form
	sort   search.SortMode
	filter search.Filter
	last   *domain.SearchState
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionClock overrides the clock used for "today".
func WithSessionClock(clock func() time.Time) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithSuggestionWait bounds the wait for lookups.
func WithSuggestionWait(d time.Duration) SessionOption {
	return func(s *Session) {
		s.wait = d
	}
}

// NewSession creates a session writing to out.
func NewSession(app *skyscout.App, renderer *tui.Renderer, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		app:      app,
		renderer: renderer,
		out:      out,
		clock:    time.Now,
		wait:     DefaultSuggestionWait,
		form:     search.NewForm(),
		sort:     search.SortBest,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands from in until EOF, quit, or ctx cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprint(s.out, "Type 'help' for commands.\n> ")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(s.out)
			return err
		case line := <-lines:
			err := s.Exec(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
			}
			fmt.Fprint(s.out, "> ")
		}
	}
}

// Exec runs a single command line.
func (s *Session) Exec(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help", "?":
		fmt.Fprint(s.out, sessionHelp)
		return nil
	case "quit", "exit":
		return errQuit
	case "from", "to":
		return s.lookup(ctx, fieldArg(cmd), rest)
	case "pick":
		return s.pick(args)
	case "swap":
		s.app.Autocomplete().Swap()
		return s.show()
	case "oneway":
		s.form.TripType = domain.OneWay
		return nil
	case "roundtrip":
		s.form.TripType = domain.RoundTrip
		return nil
	case "depart", "return":
		return s.setDate(cmd, rest)
	case "pax":
		return s.passengers(args)
	case "cabin":
		cabin, err := domain.ParseCabinClass(rest)
		if err != nil {
			return err
		}
		s.form.Cabin = cabin
		return nil
	case "sort":
		mode, err := search.ParseSortMode(rest)
		if err != nil {
			return err
		}
		s.sort = mode
		return s.renderLast()
	case "filter":
		if err := s.setFilter(args); err != nil {
			return err
		}
		return s.renderLast()
	case "show":
		return s.show()
	case "search":
		return s.search(ctx)
	}
	return fmt.Errorf("unknown command %q (try 'help')", cmd)
}

func fieldArg(s string) autocomplete.Field {
	if strings.EqualFold(s, "to") {
		return autocomplete.Destination
	}
	return autocomplete.Origin
}

func (s *Session) lookup(ctx context.Context, field autocomplete.Field, text string) error {
	ac := s.app.Autocomplete()
	if err := ac.Type(field, text); err != nil {
		return err
	}
	snap, err := s.awaitSettled(ctx, field)
	if err != nil {
		return err
	}
	if minLen := ac.MinQueryLength(); snap.Status == autocomplete.StatusEmpty && utf8.RuneCountInString(strings.TrimSpace(text)) < minLen {
		fmt.Fprintf(s.out, "Keep typing: at least %d characters are needed.\n", minLen)
		return nil
	}
	out, err := s.renderer.Places(string(field), snap.Suggestions)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, out)
	return nil
}

func (s *Session) awaitSettled(ctx context.Context, field autocomplete.Field) (autocomplete.FieldSnapshot, error) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(s.wait)
	for {
		snap := s.app.Autocomplete().Snapshot(field)
		if snap.Status != autocomplete.StatusPending {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-deadline:
			return snap, errors.New("timed out waiting for suggestions")
		case <-ticker.C:
		}
	}
}

func (s *Session) pick(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pick <from|to> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[1])
	}
	place, err := s.app.Autocomplete().Select(fieldArg(args[0]), n)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s set to %s\n", fieldArg(args[0]), place.Label())
	return nil
}

func (s *Session) setDate(which, value string) error {
	today := s.clock()
	day, err := time.ParseInLocation(domain.DateLayout, value, today.Location())
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	if which == "depart" {
		return s.form.Dates.SetDeparture(day, today)
	}
	return s.form.Dates.SetReturn(day, today)
}

func (s *Session) passengers(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pax <adults|children|infants> <+|-|n>")
	}
	kind := domain.PassengerKind(strings.ToLower(args[0]))
	var (
		next domain.PassengerCounts
		err  error
	)
	switch args[1] {
	case "+":
		next, err = s.form.Passengers.Increment(kind)
	case "-":
		next, err = s.form.Passengers.Decrement(kind)
	default:
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("invalid count %q", args[1])
		}
		next, err = s.form.Passengers.With(kind, n)
	}
	if err != nil {
		return err
	}
	s.form.Passengers = next
	fmt.Fprintln(s.out, next.Summary())
	return nil
}

func (s *Session) setFilter(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: filter <stops n|airline name|clear>")
	}
	switch strings.ToLower(args[0]) {
	case "clear":
		s.filter = search.Filter{}
	case "stops":
		if len(args) != 2 {
			return errors.New("usage: filter stops <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid stop count %q", args[1])
		}
		s.filter.MaxStops = &n
	case "airline":
		if len(args) < 2 {
			return errors.New("usage: filter airline <name>")
		}
		s.filter.Carriers = append(s.filter.Carriers, strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("unknown filter %q", args[0])
	}
	return nil
}

func (s *Session) show() error {
	origin, destination := s.app.Autocomplete().Selections()
	fmt.Fprintf(s.out, "From: %s\nTo: %s\nTrip: %s\nDepart: %s\nReturn: %s\nPassengers: %s\nCabin: %s\n",
		placeText(origin, s.app.Autocomplete().Snapshot(autocomplete.Origin).Text),
		placeText(destination, s.app.Autocomplete().Snapshot(autocomplete.Destination).Text),
		s.form.TripType,
		dateText(s.form.Dates.Departure()),
		dateText(s.form.Dates.Return()),
		s.form.Passengers.Summary(),
		s.form.Cabin,
	)
	return nil
}

func placeText(p *domain.Place, typed string) string {
	if p != nil {
		return p.Label()
	}
	if typed != "" {
		return fmt.Sprintf("%q (not selected)", typed)
	}
	return "-"
}

func dateText(t time.Time, ok bool) string {
	if !ok {
		return "-"
	}
	return t.Format(domain.DateLayout)
}

func (s *Session) search(ctx context.Context) error {
	state, err := s.app.Submit(ctx, s.form)
	if domain.IsValidation(err) {
		// Already reported through the notifier.
		return nil
	}
	s.last = &state
	return s.renderLast()
}

func (s *Session) renderLast() error {
	if s.last == nil {
		return nil
	}
	return renderState(s.out, s.renderer, *s.last, s.sort, s.filter)
}

func renderState(w io.Writer, r *tui.Renderer, state domain.SearchState, mode search.SortMode, filter search.Filter) error {
	if state.Status == domain.StatusSuccess {
		state.Itineraries = search.FilterItineraries(search.SortItineraries(state.Itineraries, mode), filter)
	}
	out, err := r.Results(state)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}
