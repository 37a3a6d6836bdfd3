package main

import (
	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/Carmen-Shannon/oxycam/engine/loader"
	"github.com/Carmen-Shannon/oxycam/engine/state"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newFitCmd(a *app) *cobra.Command {
	var (
		boxArgs    []float64
		sphereArgs []float64
		padding    []float64
		modelPath  string
		cover      bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Print the state that frames a box, sphere or model",
		Long: `Build the configured camera and controls, frame the given box, sphere or
glTF model bounds and print the resulting state record.`,
		Example: `  camctl fit --box -1,-1,-1,1,1,1 --padding 0.5,0.5,0.5,0.5
  camctl fit --sphere 0,0,0,2 --format json
  camctl fit --model scene.glb --cover`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := state.ParseFormat(format)
			if err != nil {
				return err
			}

			cam, err := a.cfg.Camera.NewCamera()
			if err != nil {
				return err
			}
			cc, err := controls.NewCameraControls(cam, a.cfg.Controls.Options(a.logger)...)
			if err != nil {
				return errors.Wrap(err, "create controls")
			}
			defer cc.Dispose()

			shapes := 0
			for _, set := range []bool{len(boxArgs) > 0, len(sphereArgs) > 0, modelPath != ""} {
				if set {
					shapes++
				}
			}
			if shapes > 1 {
				return errors.New("--box, --sphere and --model are exclusive")
			}

			options := controls.FitOptions{Cover: cover}
			switch len(padding) {
			case 0:
			case 4:
				options.PaddingLeft, options.PaddingRight = padding[0], padding[1]
				options.PaddingBottom, options.PaddingTop = padding[2], padding[3]
			default:
				return errors.Errorf("--padding needs 4 values, got %d", len(padding))
			}

			switch {
			case modelPath != "":
				m, err := loader.Load(modelPath)
				if err != nil {
					return err
				}
				a.logger.Debug().Str("model", modelPath).Int("meshes", m.Meshes).Msg("loaded model bounds")
				if err := cc.FitToBox(m.Bounds, false, options); err != nil {
					return err
				}
			case len(boxArgs) > 0:
				if len(boxArgs) != 6 {
					return errors.Errorf("--box needs 6 values, got %d", len(boxArgs))
				}
				box := common.NewBox3(
					mgl64.Vec3{boxArgs[0], boxArgs[1], boxArgs[2]},
					mgl64.Vec3{boxArgs[3], boxArgs[4], boxArgs[5]},
				)
				if err := cc.FitToBox(box, false, options); err != nil {
					return err
				}
			case len(sphereArgs) > 0:
				if len(sphereArgs) != 4 {
					return errors.Errorf("--sphere needs 4 values, got %d", len(sphereArgs))
				}
				sphere := common.Sphere{
					Center: mgl64.Vec3{sphereArgs[0], sphereArgs[1], sphereArgs[2]},
					Radius: sphereArgs[3],
				}
				if err := cc.FitToSphere(sphere, false); err != nil {
					return err
				}
			default:
				return errors.New("fit needs --box, --sphere or --model")
			}

			cc.Apply()
			a.logger.Debug().Float64("distance", cc.Distance()).Msg("fitted")

			data, err := cc.Serialize(outFormat)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().Float64SliceVar(&boxArgs, "box", nil, "box corners: minX,minY,minZ,maxX,maxY,maxZ")
	cmd.Flags().Float64SliceVar(&sphereArgs, "sphere", nil, "sphere: x,y,z,radius")
	cmd.Flags().StringVar(&modelPath, "model", "", "glTF or GLB model whose bounds to frame")
	cmd.Flags().Float64SliceVar(&padding, "padding", nil, "box padding: left,right,bottom,top")
	cmd.Flags().BoolVar(&cover, "cover", false, "fill the view with the box")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json, yaml or toml")
	return cmd
}
