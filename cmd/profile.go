package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/matching"
	"github.com/spigell/jobmatch/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the candidate profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile",
	Args:  cobra.NoArgs,
	Run: withStore(func(logger *zap.Logger, store *profile.Store, _ *cobra.Command, _ []string) error {
		showProfile(logger, store.Profile())
		return nil
	}),
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the profile with the defaults",
	Args:  cobra.NoArgs,
	Run: withStore(func(_ *zap.Logger, store *profile.Store, _ *cobra.Command, _ []string) error {
		return store.Reset()
	}),
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	Run: withStore(func(logger *zap.Logger, store *profile.Store, cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		if !slices.ContainsFunc([]string{"level", "years", "skills", "categories"}, flags.Changed) {
			return fmt.Errorf("nothing to set: pass at least one of --level, --years, --skills, --categories")
		}

		level, _ := flags.GetString("level")
		years, _ := flags.GetInt("years")
		skills, _ := flags.GetStringSlice("skills")
		categories, _ := flags.GetStringSlice("categories")

		err := store.Update(func(p *matching.CandidateProfile) {
			if flags.Changed("level") {
				p.ExperienceLevel = matching.Level(level)
			}
			if flags.Changed("years") {
				p.YearsOfExperience = years
			}
			if flags.Changed("skills") {
				p.Skills = skills
			}
			if flags.Changed("categories") {
				p.PreferredCategories = categories
			}
		})
		if err != nil {
			return err
		}

		showProfile(logger, store.Profile())
		return nil
	}),
}

var profileAddSkillCmd = &cobra.Command{
	Use:   "add-skill <skill>...",
	Short: "Add skills to the profile",
	Args:  cobra.MinimumNArgs(1),
	Run: withStore(func(logger *zap.Logger, store *profile.Store, _ *cobra.Command, args []string) error {
		if err := store.Update(func(p *matching.CandidateProfile) {
			p.Skills = append(p.Skills, args...)
		}); err != nil {
			return err
		}

		logger.Info("skills added", zap.Strings("skills", args))
		return nil
	}),
}

var profileRemoveSkillCmd = &cobra.Command{
	Use:   "remove-skill <skill>...",
	Short: "Remove skills from the profile",
	Args:  cobra.MinimumNArgs(1),
	Run: withStore(func(logger *zap.Logger, store *profile.Store, _ *cobra.Command, args []string) error {
		removed := 0
		if err := store.Update(func(p *matching.CandidateProfile) {
			before := len(p.Skills)
			p.Skills = slices.DeleteFunc(p.Skills, func(skill string) bool {
				return slices.ContainsFunc(args, func(arg string) bool {
					return strings.EqualFold(strings.TrimSpace(arg), strings.TrimSpace(skill))
				})
			})
			removed = before - len(p.Skills)
		}); err != nil {
			return err
		}

		if removed == 0 {
			logger.Warn("no matching skills in the profile", zap.Strings("skills", args))
			return nil
		}

		logger.Info("skills removed", zap.Int("count", removed))
		return nil
	}),
}

func init() {
	profileSetCmd.Flags().String("level", "", "experience level: entry, mid, senior or executive")
	profileSetCmd.Flags().Int("years", 0, "years of experience")
	profileSetCmd.Flags().StringSlice("skills", nil, "comma separated list of skills, replaces the current ones")
	profileSetCmd.Flags().StringSlice("categories", nil, "comma separated list of preferred categories")

	profileCmd.AddCommand(profileShowCmd, profileResetCmd, profileSetCmd, profileAddSkillCmd, profileRemoveSkillCmd)
	rootCmd.AddCommand(profileCmd)
}

type storeAction func(logger *zap.Logger, store *profile.Store, cmd *cobra.Command, args []string) error

// withStore loads the profile store before running the action.
func withStore(action storeAction) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		logger, config := mustSetup()

		store := profile.NewStore(config.ProfileFile, logger)
		if _, err := store.Load(); err != nil {
			logger.Error("loading the profile", zap.Error(err))
			os.Exit(1)
		}

		if err := action(logger, store, cmd, args); err != nil {
			logger.Error(fmt.Sprintf("profile %s failed", cmd.Name()), zap.Error(err))
			os.Exit(1)
		}
	}
}

func showProfile(logger *zap.Logger, p matching.CandidateProfile) {
	logger.Info("profile",
		zap.Strings("skills", p.Skills),
		zap.String("experience_level", string(p.ExperienceLevel)),
		zap.Int("years_of_experience", p.YearsOfExperience),
		zap.Strings("preferred_categories", p.PreferredCategories),
	)
}
