// Package replay runs scripted sequences of camera controls actions, one at a time or in
// parallel batches.
package replay

import (
	"os"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/config"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFrameTime is the update step used when a step does not set dt.
const DefaultFrameTime = 1.0 / 60

// DefaultSettleFrames bounds how many frames a settle step may run.
const DefaultSettleFrames = 10000

// Script is a named sequence of steps run against a freshly built camera and controls.
//
// Example:
//
//	name: orbit
//	camera:
//	  position: [0, 0, 5]
//	steps:
//	  - action: rotate
//	    args: [0.5, 0.2]
//	    animated: true
//	  - action: settle
type Script struct {
	Name     string                `yaml:"name"`
	Camera   config.CameraConfig   `yaml:"camera"`
	Controls config.ControlsConfig `yaml:"controls"`
	Steps    []Step                `yaml:"steps"`
}

// Step is one action in a script. Update and settle steps use Frames and DT; every other
// action reads its parameters from Args.
type Step struct {
	Action   string    `yaml:"action"`
	Args     []float64 `yaml:"args,omitempty,flow"`
	Animated bool      `yaml:"animated,omitempty"`
	Frames   int       `yaml:"frames,omitempty"`
	DT       float64   `yaml:"dt,omitempty"`
}

// ParseScript decodes a YAML script. Sections left out of the document keep the
// configuration defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Script: the decoded and validated script
//   - error: if the document cannot be decoded or names an unknown action
func ParseScript(data []byte) (Script, error) {
	defaults := config.DefaultConfig()
	script := Script{
		Camera:   defaults.Camera,
		Controls: defaults.Controls,
	}
	if err := yaml.Unmarshal(data, &script); err != nil {
		return Script{}, errors.Wrap(err, "decode replay script")
	}
	if err := script.Validate(); err != nil {
		return Script{}, err
	}
	return script, nil
}

// LoadScript reads and decodes the script at path. An unnamed script takes the path as its name.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, errors.Wrapf(err, "read replay script %s", path)
	}
	script, err := ParseScript(data)
	if err != nil {
		return Script{}, errors.Wrap(err, path)
	}
	script.Name = common.Coalesce(script.Name, path)
	return script, nil
}

// Validate checks every step against the action table.
func (s Script) Validate() error {
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return errors.Wrapf(err, "step %d", i)
		}
	}
	return nil
}

// Marshal encodes the script as YAML.
func (s Script) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	return data, errors.Wrap(err, "encode replay script")
}

func (s Step) validate() error {
	a, ok := actions[s.Action]
	if !ok {
		return errors.Wrapf(ErrUnknownAction, "%q", s.Action)
	}
	if !a.accepts(len(s.Args)) {
		return errors.Wrapf(ErrArgumentCount, "%s takes %s, got %d", s.Action, a.arityString(), len(s.Args))
	}
	if s.Frames < 0 {
		return errors.Errorf("%s: frames %d must not be negative", s.Action, s.Frames)
	}
	if s.DT < 0 {
		return errors.Errorf("%s: dt %v must not be negative", s.Action, s.DT)
	}
	return nil
}

func (s Step) frameTime() float64 {
	return common.Coalesce(s.DT, DefaultFrameTime)
}
