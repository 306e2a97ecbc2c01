package prefabs

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := DecodeSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func DecodeSpec[T any](data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type GroundCheckSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Radius  float64 `yaml:"radius"`
}

type SpeedBoostSpec struct {
	SpeedMultiplier float64       `yaml:"speed_multiplier"`
	JumpMultiplier  float64       `yaml:"jump_multiplier"`
	Duration        time.Duration `yaml:"duration"`
	Cooldown        time.Duration `yaml:"cooldown"`
}

type TeleportSpec struct {
	MaxDistance float64       `yaml:"max_distance"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

type RewindSpec struct {
	Speed    float64       `yaml:"speed"`
	Cooldown time.Duration `yaml:"cooldown"`
}

type HistorySpec struct {
	Capacity           int           `yaml:"capacity"`
	Interval           time.Duration `yaml:"interval"`
	RecordDuringRewind bool          `yaml:"record_during_rewind"`
}

// BindingsSpec names keys the way ebiten.Key prints them ("Space", "Q",
// "ArrowLeft"). Teleport takes a mouse button: "left", "right" or "middle".
type BindingsSpec struct {
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	Jump     []string `yaml:"jump"`
	Boost    []string `yaml:"boost"`
	Rewind   []string `yaml:"rewind"`
	Teleport string   `yaml:"teleport"`
}

type PlayerSpec struct {
	Name              string          `yaml:"name"`
	MoveSpeed         float64         `yaml:"move_speed"`
	AirSpeed          float64         `yaml:"air_speed"`
	JumpSpeed         float64         `yaml:"jump_speed"`
	FallShakeDistance float64         `yaml:"fall_shake_distance"`
	Transform         TransformSpec   `yaml:"transform"`
	Collider          ColliderSpec    `yaml:"collider"`
	GroundCheck       GroundCheckSpec `yaml:"ground_check"`
	SpeedBoost        SpeedBoostSpec  `yaml:"speed_boost"`
	Teleport          TeleportSpec    `yaml:"teleport"`
	Rewind            RewindSpec      `yaml:"rewind"`
	History           HistorySpec     `yaml:"history"`
	Bindings          BindingsSpec    `yaml:"bindings"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: player.yaml: %w", err)
	}
	return &spec, nil
}

// Validate rejects tunables that would stall or break the controller.
func (s *PlayerSpec) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positiveDuration := func(name string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, d))
		}
	}

	positive("move_speed", s.MoveSpeed)
	positive("air_speed", s.AirSpeed)
	positive("jump_speed", s.JumpSpeed)
	positive("fall_shake_distance", s.FallShakeDistance)
	positive("collider.width", s.Collider.Width)
	positive("collider.height", s.Collider.Height)
	positive("ground_check.radius", s.GroundCheck.Radius)
	positive("speed_boost.speed_multiplier", s.SpeedBoost.SpeedMultiplier)
	positive("speed_boost.jump_multiplier", s.SpeedBoost.JumpMultiplier)
	positiveDuration("speed_boost.duration", s.SpeedBoost.Duration)
	positiveDuration("speed_boost.cooldown", s.SpeedBoost.Cooldown)
	positive("teleport.max_distance", s.Teleport.MaxDistance)
	positiveDuration("teleport.cooldown", s.Teleport.Cooldown)
	positive("rewind.speed", s.Rewind.Speed)
	positiveDuration("rewind.cooldown", s.Rewind.Cooldown)
	positiveDuration("history.interval", s.History.Interval)
	if s.History.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("history.capacity must be positive, got %d", s.History.Capacity))
	}

	return errors.Join(errs...)
}

// RewindStep is the simulated time between two replayed samples.
func (s *PlayerSpec) RewindStep() time.Duration {
	if s.Rewind.Speed <= 0 {
		return s.History.Interval
	}
	return time.Duration(float64(s.History.Interval) / s.Rewind.Speed)
}

type CameraShakeSpec struct {
	Duration  time.Duration `yaml:"duration"`
	Intensity float64       `yaml:"intensity"`
}

type CameraSpec struct {
	Name       string          `yaml:"name"`
	Transform  TransformSpec   `yaml:"transform"`
	Target     string          `yaml:"target"`
	Zoom       float64         `yaml:"zoom"`
	Smoothness float64         `yaml:"smoothness"`
	Shake      CameraShakeSpec `yaml:"shake"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Zoom <= 0 {
		return nil, fmt.Errorf("prefabs: camera.yaml: zoom must be positive, got %v", spec.Zoom)
	}
	if spec.Shake.Duration <= 0 || spec.Shake.Intensity < 0 {
		return nil, fmt.Errorf("prefabs: camera.yaml: invalid shake %+v", spec.Shake)
	}
	return &spec, nil
}
