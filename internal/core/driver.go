package core

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mathrand "math/rand"

	"github.com/rs/zerolog"
	"github.com/trapeze-go/triangulate/inputs"
	"github.com/trapeze-go/triangulate/outputs"
)

// Option configures a single Triangulate call.
type Option func(*options)

type options struct {
	seed      int64
	haveSeed  bool
	logger    Logger
	dumpDebug bool
}

// WithSeed fixes the math/rand source so the same input, same seed, and same
// output format always produce the same trapezoidation and the same fan
// set, up to the format's own ordering freedom. Omitting WithSeed uses a
// crypto/rand-seeded source instead, so two runs over the same input are
// not accidentally reproducible by default.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.haveSeed = true
	}
}

// WithLogger routes the engine's structured debug trace through logger
// instead of discarding it.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = ZerologAdapter{Log: *logger}
	}
}

// WithDebugDump forces the SVG dump pipeline on regardless of the
// SVG_OUTPUT_PATH environment variable.
func WithDebugDump(enabled bool) Option {
	return func(o *options) {
		o.dumpDebug = enabled
	}
}

func resolveOptions(opts []Option) options {
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newRand(o options) (*mathrand.Rand, error) {
	if o.haveSeed {
		return mathrand.New(mathrand.NewSource(o.seed)), nil
	}
	seedBig, err := rand.Int(rand.Reader, big.NewInt(0).SetUint64(1<<63-1))
	if err != nil {
		return nil, Internalf("could not seed randomness: %v", err)
	}
	var buf [8]byte
	seedBig.FillBytes(buf[:])
	seed := int64(binary.BigEndian.Uint64(buf[:]))
	return mathrand.New(mathrand.NewSource(seed)), nil
}

// fanBuilderState is the Uninitialized/Initialized/Error state machine that
// adapts TriangulateInner's NewFan/ExtendFan event stream onto a
// outputs.FanFormat's lazily-constructed outputs.FanBuilder.
type fanBuilderState[T any] struct {
	format  outputs.FanFormat[T]
	builder outputs.FanBuilder[T]

	polygonList inputs.PolygonList
	state       int // 0 = uninitialized, 1 = initialized, 2 = error
}

const (
	fbsUninitialized = 0
	fbsInitialized   = 1
	fbsError         = 2
)

func newFanBuilderState[T any](polygonList inputs.PolygonList, format outputs.FanFormat[T]) *fanBuilderState[T] {
	return &fanBuilderState[T]{format: format, polygonList: polygonList, state: fbsUninitialized}
}

func (s *fanBuilderState[T]) NewFan(a, b, c int) error {
	switch s.state {
	case fbsUninitialized:
		builder, err := s.format.Initialize(s.polygonList, a, b, c)
		if err != nil {
			s.state = fbsError
			return err
		}
		s.builder = builder
		s.state = fbsInitialized
		return nil
	case fbsInitialized:
		if err := s.builder.NewFan(a, b, c); err != nil {
			s.state = fbsError
			return err
		}
		return nil
	default:
		return Internalf("new_fan called after the fan builder already failed")
	}
}

func (s *fanBuilderState[T]) ExtendFan(v int) error {
	switch s.state {
	case fbsInitialized:
		if err := s.builder.ExtendFan(v); err != nil {
			s.state = fbsError
			return err
		}
		return nil
	case fbsUninitialized:
		return Internalf("extend_fan called before any new_fan")
	default:
		return Internalf("extend_fan called after the fan builder already failed")
	}
}

// complete resolves the state machine once TriangulateInner has either
// returned nil (runErr == nil) or failed (runErr != nil), producing the
// format's final output or propagating the failure after giving the
// in-progress builder a chance to clean up via Fail.
func (s *fanBuilderState[T]) complete(runErr error) (T, error) {
	var zero T
	switch s.state {
	case fbsInitialized:
		if runErr != nil {
			s.builder.Fail(runErr)
			return zero, runErr
		}
		return s.builder.Build()
	case fbsUninitialized:
		if runErr != nil {
			return zero, runErr
		}
		return zero, &NoVerticesError{}
	default: // fbsError
		if runErr == nil {
			return zero, Internalf("fan builder entered the error state without a reported error")
		}
		if s.builder != nil {
			s.builder.Fail(runErr)
		}
		return zero, runErr
	}
}

// Triangulate runs the whole two-phase pipeline — trapezoidation, then
// monotone extraction and fanning — over polygonList, delivering the result
// through format.
func Triangulate[T any](polygonList inputs.PolygonList, format outputs.FanFormat[T], opts ...Option) (T, error) {
	var zero T
	o := resolveOptions(opts)

	n := polygonList.VertexCount()
	if n == 0 {
		return zero, &NoVerticesError{}
	}

	coords := make([]Coords, n)
	for i := 0; i < n; i++ {
		v := polygonList.GetVertex(i)
		coords[i] = Coords{X: v.X(), Y: v.Y()}
	}
	polygons := inputs.ElementsToPolygons(polygonList)

	rng, err := newRand(o)
	if err != nil {
		return zero, err
	}

	cfg := configFromEnv()
	if o.dumpDebug {
		cfg.DebugDump = true
		if cfg.DebugDumpPath == "" {
			cfg.DebugDumpPath = "triangulate-debug"
		}
	}

	engine := NewEngine(n, rng, o.logger)
	if err := engine.build(polygons, coords, cfg); err != nil {
		return zero, err
	}
	engine.dumpTrapezoidation(cfg, "final")

	sink := newFanBuilderState[T](polygonList, format)
	runErr := engine.TriangulateInner(format.Winding(), sink)
	return sink.complete(runErr)
}
