// Command replay is the CLI driver for the deterministic core: it reads a
// tape file off disk and runs it through sim.Replay, sim.ReplayStrict, or
// sim.ReplayWithCheckpoints, printing the resulting ReplayResult (or the
// first rule violation) as a single log line, or one log line per
// checkpoint for the checkpoints subcommand. It is a debugging and
// acceptance-testing tool, not part of the trusted kernel itself — the
// prover and on-chain verifier are separate systems that happen to link
// against the same sim package.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/kalepail/asteroids-core/internal/sim"
)

var log = logrus.New()

func main() {
	app := &cli.App{
		Name:  "replay",
		Usage: "replay an Asteroids verification tape against the deterministic core",
		Commands: []*cli.Command{
			replayCommand(),
			strictCommand(),
			checkpointsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("replay failed")
	}
}

func tapePathFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "tape",
		Aliases:  []string{"t"},
		Usage:    "path to a tape file written in the sim package's on-disk tape layout",
		Required: true,
	}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "run a tape with no validation and print the final result",
		Flags: []cli.Flag{tapePathFlag()},
		Action: func(c *cli.Context) error {
			tape, err := loadTape(c.String("tape"))
			if err != nil {
				return err
			}
			result := sim.Replay(tape.Header.Seed, tape.Inputs)
			log.WithFields(logrus.Fields{
				"frames":   result.FrameCount,
				"score":    result.FinalScore,
				"rngState": result.FinalRNGState,
			}).Info("replay complete")
			return nil
		},
	}
}

func strictCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay-strict",
		Usage: "run a tape validating every transition and invariant, halting on the first violation",
		Flags: []cli.Flag{tapePathFlag()},
		Action: func(c *cli.Context) error {
			tape, err := loadTape(c.String("tape"))
			if err != nil {
				return err
			}
			result, err := sim.ReplayStrict(tape.Header.Seed, tape.Inputs)
			if violation, ok := err.(sim.ReplayViolation); ok {
				log.WithFields(logrus.Fields{
					"frame": violation.FrameCount,
					"rule":  violation.Rule.String(),
				}).Error("rejected tape")
				return cli.Exit(err.Error(), 1)
			} else if err != nil {
				return errors.Wrap(err, "strict replay")
			}
			if tape.Footer.RulesDigest != 0 && tape.Footer.RulesDigest != sim.RulesDigest {
				return cli.Exit("tape declares a rules digest this build does not implement", 1)
			}
			if tape.Footer.FinalScore != result.FinalScore || tape.Footer.FinalRNGState != result.FinalRNGState {
				return cli.Exit("tape footer disagrees with the replayed result", 1)
			}
			log.WithFields(logrus.Fields{
				"frames":   result.FrameCount,
				"score":    result.FinalScore,
				"rngState": result.FinalRNGState,
			}).Info("strict replay accepted")
			return nil
		},
	}
}

func checkpointsCommand() *cli.Command {
	var stride uint

	return &cli.Command{
		Name:  "checkpoints",
		Usage: "print a coarse checkpoint every --stride frames",
		Flags: []cli.Flag{
			tapePathFlag(),
			&cli.UintFlag{Name: "stride", Value: 60, Destination: &stride},
		},
		Action: func(c *cli.Context) error {
			tape, err := loadTape(c.String("tape"))
			if err != nil {
				return err
			}
			for _, cp := range sim.ReplayWithCheckpoints(tape.Header.Seed, tape.Inputs, uint32(stride)) {
				log.WithFields(logrus.Fields{
					"frame":     cp.FrameCount,
					"score":     cp.Score,
					"lives":     cp.Lives,
					"wave":      cp.Wave,
					"asteroids": cp.Asteroids,
				}).Info("checkpoint")
			}
			return nil
		},
	}
}

func loadTape(path string) (sim.Tape, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.Tape{}, errors.Wrapf(err, "open tape %s", path)
	}
	defer f.Close()

	tape, err := sim.ReadTape(f)
	if err != nil {
		return sim.Tape{}, errors.Wrapf(err, "parse tape %s", path)
	}
	return tape, nil
}
