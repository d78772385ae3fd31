package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/reneeyyx/Safety1st/pkg/cli/config"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/engine"
	"github.com/urfave/cli/v3"
)

func cmdEval() *cli.Command {
	var inputPath string
	var asJSON bool
	var speedKmh float64
	var crashSide string
	var vehicleMassKg float64
	var occupantMassKg float64
	var occupantHeightM float64
	var gender string
	var pregnant bool
	var seatDistanceCm float64
	var seatReclineDeg float64
	var neckStrength string
	var seatRole string
	var beltFit string
	var seatbelt bool
	var pretensioner bool
	var loadLimiter bool
	var frontAirbag bool
	var sideAirbag bool
	var intrusionCm float64
	var correlationFactor float64
	var calCfg config.Calibration

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Usage:       "Path to a JSON file of crash inputs (overrides the scenario flags)",
			Destination: &inputPath,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the full result as JSON instead of a report",
			Destination: &asJSON,
		},
		&cli.FloatFlag{
			Name:        "speed-kmh",
			Usage:       "Impact speed in km/h",
			Value:       50,
			Destination: &speedKmh,
		},
		&cli.StringFlag{
			Name:        "crash-side",
			Usage:       "Crash side (frontal, side or rear)",
			Value:       "frontal",
			Destination: &crashSide,
		},
		&cli.FloatFlag{
			Name:        "vehicle-mass-kg",
			Value:       1500,
			Destination: &vehicleMassKg,
		},
		&cli.FloatFlag{
			Name:        "occupant-mass-kg",
			Value:       75,
			Destination: &occupantMassKg,
		},
		&cli.FloatFlag{
			Name:        "occupant-height-m",
			Value:       1.75,
			Destination: &occupantHeightM,
		},
		&cli.StringFlag{
			Name:        "gender",
			Usage:       "Occupant gender (male or female)",
			Value:       "male",
			Destination: &gender,
		},
		&cli.BoolFlag{
			Name:        "pregnant",
			Destination: &pregnant,
		},
		&cli.FloatFlag{
			Name:        "seat-distance-cm",
			Usage:       "Seat distance from the wheel in cm",
			Value:       30,
			Destination: &seatDistanceCm,
		},
		&cli.FloatFlag{
			Name:        "seat-recline-deg",
			Value:       20,
			Destination: &seatReclineDeg,
		},
		&cli.StringFlag{
			Name:        "neck-strength",
			Usage:       "Neck strength (weak, average or strong)",
			Value:       "average",
			Destination: &neckStrength,
		},
		&cli.StringFlag{
			Name:        "seat-role",
			Usage:       "Seat role (driver or passenger)",
			Value:       "driver",
			Destination: &seatRole,
		},
		&cli.StringFlag{
			Name:        "belt-fit",
			Usage:       "Pelvis lap belt fit (poor, average or good)",
			Value:       "good",
			Destination: &beltFit,
		},
		&cli.BoolFlag{
			Name:        "seatbelt",
			Value:       true,
			Destination: &seatbelt,
		},
		&cli.BoolFlag{
			Name:        "pretensioner",
			Value:       true,
			Destination: &pretensioner,
		},
		&cli.BoolFlag{
			Name:        "load-limiter",
			Value:       true,
			Destination: &loadLimiter,
		},
		&cli.BoolFlag{
			Name:        "front-airbag",
			Value:       true,
			Destination: &frontAirbag,
		},
		&cli.BoolFlag{
			Name:        "side-airbag",
			Destination: &sideAirbag,
		},
		&cli.FloatFlag{
			Name:        "intrusion-cm",
			Destination: &intrusionCm,
		},
		&cli.FloatFlag{
			Name:        "correlation-factor",
			Usage:       "Injury probability union correlation factor (1.0 is independence)",
			Value:       1.0,
			Destination: &correlationFactor,
		},
	}
	flags = append(flags, calCfg.Flags()...)

	return &cli.Command{
		Name:    "eval",
		Aliases: []string{"e"},
		Usage:   "Run a single crash risk evaluation and print the result",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cal, err := calCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load calibration")
			}
			calculator, err := engine.New(cal)
			if err != nil {
				return goerr.Wrap(err, "failed to build risk engine")
			}

			var raw model.CrashInputs
			if inputPath != "" {
				// #nosec G304 - path is expected to be provided by CLI argument
				data, err := os.ReadFile(inputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to read input file", goerr.V("path", inputPath))
				}
				if err := json.Unmarshal(data, &raw); err != nil {
					return goerr.Wrap(err, "failed to parse input file", goerr.V("path", inputPath))
				}
			} else {
				raw = model.CrashInputs{
					ImpactSpeedMPS:         speedKmh / 3.6,
					VehicleMassKg:          vehicleMassKg,
					CrashSide:              types.CrashSide(crashSide),
					OccupantMassKg:         occupantMassKg,
					OccupantHeightM:        occupantHeightM,
					Gender:                 types.Gender(gender),
					Pregnant:               pregnant,
					SeatDistanceFromWheelM: seatDistanceCm / 100,
					SeatReclineAngleDeg:    seatReclineDeg,
					NeckStrength:           types.NeckStrength(neckStrength),
					SeatRole:               types.SeatRole(seatRole),
					BeltFit:                types.BeltFit(beltFit),
					CabinRigidity:          types.CabinRigidityMedium,
					IntrusionM:             intrusionCm / 100,
					CorrelationFactor:      correlationFactor,
					Restraints: model.Restraints{
						SeatbeltUsed: seatbelt,
						Pretensioner: pretensioner,
						LoadLimiter:  loadLimiter,
						FrontAirbag:  frontAirbag,
						SideAirbag:   sideAirbag,
					},
				}
			}

			in, err := model.NewCrashInputs(raw)
			if err != nil {
				return goerr.Wrap(err, "invalid crash inputs")
			}

			result, err := calculator.Evaluate(ctx, in)
			if err != nil {
				return goerr.Wrap(err, "evaluation failed")
			}

			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to marshal result")
				}
				fmt.Println(string(data))
				return nil
			}

			printReport(result)
			return nil
		},
	}
}

func printReport(result *model.CrashRiskResult) {
	header := color.New(color.Bold)
	label := color.New(color.FgCyan)

	header.Println("Crash Risk Evaluation")
	fmt.Println()

	label.Printf("%-24s", "Risk score (0-100):")
	scoreColor(result.RiskScore).Printf("%.1f\n", result.RiskScore)
	label.Printf("%-24s", "Overall probability:")
	fmt.Printf("%.4f\n", result.OverallProbability)
	label.Printf("%-24s", "Calibration set:")
	fmt.Println(result.CalibrationSet)
	fmt.Println()

	header.Println("Crash dynamics")
	fmt.Printf("  delta-v:        %.2f m/s\n", result.Dynamics.DeltaVMPS)
	fmt.Printf("  pulse duration: %.0f ms (%s)\n", result.Dynamics.PulseDurationS*1000, result.Dynamics.PulseType)
	fmt.Printf("  peak accel:     %.1f g\n", result.Dynamics.PeakAccelG)
	fmt.Printf("  restraints:     %s (transfer %.3f)\n", result.Restraint.Description, result.Restraint.TransferFactor)
	fmt.Println()

	header.Println("Injury criteria")
	fmt.Printf("  HIC15:             %8.1f      p(head)   %.4f\n",
		result.Criteria.HIC15, result.Probabilities.Head)
	fmt.Printf("  Nij:               %8.3f      p(neck)   %.4f  (%s)\n",
		result.Criteria.Nij, result.Probabilities.Neck, result.Criteria.NijMode)
	fmt.Printf("  Thorax deflection: %8.1f mm   p(thorax) %.4f\n",
		result.Criteria.ThoraxDeflectionMM, result.Probabilities.Thorax)
	fmt.Printf("  Femur load:        %8.2f kN   p(femur)  %.4f\n",
		result.Criteria.FemurLoadKN, result.Probabilities.Femur)
	fmt.Printf("  Chest 3ms clip:    %8.1f g    (diagnostic only)\n",
		result.Criteria.ChestA3msG)
	fmt.Println()

	header.Printf("Assumptions\n")
	for _, a := range result.Assumptions {
		fmt.Printf("  - %s\n", a)
	}
}

func scoreColor(score float64) *color.Color {
	switch {
	case score < 20:
		return color.New(color.FgGreen, color.Bold)
	case score < 50:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
