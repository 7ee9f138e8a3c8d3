package widget

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"weather-widget/internal/domain/usecase/weather"
	"weather-widget/pkg/log"
	"weather-widget/pkg/msg"
)

var settled = func() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Controller owns the state of one weather widget: the input text, its validation
// message and the lookup state. It is safe for concurrent use.
//
// Each valid Submit starts a new generation and cancels the request of the previous
// one; a response is applied only if its generation is still current, so the last
// submission wins regardless of completion order. After Close no response is applied.
type Controller struct {
	useCase weather.UseCase

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu         sync.Mutex
	input      string
	inputErr   string
	state      State
	generation uint64
	cancel     context.CancelFunc
	submitted  bool
	closed     bool
}

// NewController creates a widget whose input starts with defaultCity.
func NewController(useCase weather.UseCase, defaultCity string) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		useCase:    useCase,
		baseCtx:    ctx,
		baseCancel: cancel,
		input:      defaultCity,
		state:      Idle(),
	}
}

// SetCityText stores text verbatim as the input value and revalidates it.
// A valid input also dismisses a fetch error. It never starts a request.
func (c *Controller) SetCityText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = text
	if _, err := c.useCase.ValidateCity(text); err != nil {
		c.inputErr = weather.UserMessage(err)
		return
	}

	c.inputErr = ""
	if c.state.Phase() == PhaseError {
		c.state = c.state.settled()
	}
}

// Submit looks up the weather for the trimmed input. Invalid input only sets the
// validation message. The returned channel is closed once the request has settled,
// whether its response was applied or discarded.
func (c *Controller) Submit() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.submitLocked()
}

// Activate submits the initial input once, unless a submission already happened.
func (c *Controller) Activate() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitted {
		return settled
	}
	return c.submitLocked()
}

func (c *Controller) submitLocked() <-chan struct{} {
	if c.closed {
		return settled
	}
	c.submitted = true

	city, err := c.useCase.ValidateCity(c.input)
	if err != nil {
		c.inputErr = weather.UserMessage(err)
		return settled
	}

	c.inputErr = ""
	c.generation++
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancel = cancel
	c.state = Loading(c.state.Result())

	done := make(chan struct{})
	go c.run(ctx, cancel, c.generation, city, done)
	return done
}

// Close cancels any in-flight request; later responses are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel = nil
	c.baseCancel()
}

// View returns a snapshot of the widget.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Input:      c.input,
		InputError: c.inputErr,
		State:      c.state,
	}
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, generation uint64, city string, done chan<- struct{}) {
	defer close(done)
	defer cancel()

	result, err := c.useCase.GetCurrentWeather(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || generation != c.generation {
		log.Debug(msg.GetMessage("widget.stale-response", city, generation, c.generation),
			zap.String("city", city),
			zap.Uint64("generation", generation),
			zap.Uint64("current_generation", c.generation),
			zap.Bool("closed", c.closed))
		return
	}

	c.cancel = nil
	if err != nil {
		c.state = Failed(weather.UserMessage(err), c.state.Result())
		return
	}
	c.state = Success(result)
}
