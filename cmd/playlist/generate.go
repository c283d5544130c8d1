package main

import (
	"fmt"
	"math/rand"

	"playlist-server/internal/playlist"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a playlist",
		Example: `  playlist generate --duration 90 --alignment legal --system Stanton
  playlist generate --type Bounty --seed 42 --text`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().Int("duration", 60, "session length in minutes")
	cmd.Flags().String("alignment", string(playlist.AlignmentAny), "any, legal or illegal")
	cmd.Flags().String("type", playlist.Any, "mission type name or any")
	cmd.Flags().String("system", playlist.Any, "system name or any")
	cmd.Flags().Int64("seed", 0, "random seed; omit for a fresh playlist")
	cmd.Flags().String("travel", "", "YAML travel table overriding the built-in costs")
	cmd.Flags().Bool("text", false, "print the plain-text transcript instead of cards")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	travelPath, _ := cmd.Flags().GetString("travel")
	travel, err := playlist.LoadTravelConfig(travelPath)
	if err != nil {
		return err
	}

	named := playlist.NamedRequest{}
	named.Duration, _ = cmd.Flags().GetInt("duration")
	named.Alignment, _ = cmd.Flags().GetString("alignment")
	named.MissionType, _ = cmd.Flags().GetString("type")
	named.System, _ = cmd.Flags().GetString("system")

	seed := rand.Int63()
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetInt64("seed")
	}

	req, err := playlist.ResolveRequest(ds, named)
	if err != nil {
		return err
	}

	result := playlist.Generate(ds, req, travel.Resolve(ds), rand.New(rand.NewSource(seed)))
	rendered := playlist.Render(result, req.Alignment)
	commandLogger(cmd).Debug("Playlist generated", "seed", seed, "entries", len(result.Entries), "halt", result.Halt)

	out := cmd.OutOrStdout()
	if text, _ := cmd.Flags().GetBool("text"); text {
		if rendered.Empty {
			fmt.Fprintln(out, rendered.Message)
			return nil
		}
		fmt.Fprint(out, rendered.Transcript)
		return nil
	}

	fmt.Fprintln(out, renderCards(rendered, playlist.FormatDuration(named.Duration), seed))
	return nil
}
