package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/internal/validation"
)

func newShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <question|answer> <id>",
		Short: "Show the score of a question or answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseTarget(args[0], args[1])
			if err != nil {
				return err
			}

			v, err := e.app.Votes.Load(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			renderVotable(e.out(), v)
			return nil
		},
	}
}

func newVoteCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <up|down> <question|answer> <id>",
		Short: "Upvote or downvote a question or answer",
		Long:  "Upvote or downvote a question or answer. Repeating the same vote removes it; voting the other way switches it.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			requested, err := models.ParseVoteState(args[0])
			if err != nil || !requested.IsDirection() {
				return fmt.Errorf("unknown vote %q: use up or down", args[0])
			}
			kind, id, err := parseTarget(args[1], args[2])
			if err != nil {
				return err
			}

			pending, err := e.app.Votes.Vote(cmd.Context(), kind, id, requested)
			if err != nil {
				return err
			}
			if pending.Skipped() {
				e.opts.IO.Println("A vote on this item is already in progress")
				return nil
			}

			if err := pending.Wait(cmd.Context()); err != nil {
				return err
			}

			v, _ := e.app.Votes.Cached(kind, id)
			renderVotable(e.out(), v)
			return nil
		},
	}
}

func parseTarget(kindArg, id string) (models.EntityKind, string, error) {
	kind, err := models.ParseEntityKind(kindArg)
	if err != nil {
		return "", "", err
	}
	if err := validation.ValidateEntityID(id); err != nil {
		return "", "", fmt.Errorf("invalid %s id: %w", kind, err)
	}
	return kind, id, nil
}
