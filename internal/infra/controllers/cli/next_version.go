package cli

import (
	"errors"
	"fmt"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/git/gitlocal"
	"github.com/urfave/cli/v2"
)

const defaultNextVersionTemplate = "{{ .OldVersion }} => {{ .NewVersion }}"

func nextVersionAction(cCtx *cli.Context) error {
	setDefaultLogger(cCtx)
	localGitPath := cCtx.Args().Get(0)
	if localGitPath == "" {
		return cli.Exit("You have to set LOCAL_GIT_REPO_PATH argument (use . for the currently dir)", 1)
	}
	gitAdapter := gitlocal.NewAdapter(gitlocal.AdapterOptions{LocalGitPath: localGitPath})
	mrAdapter, err := getMrAdapter(cCtx, gitAdapter)
	if err != nil {
		return err
	}
	service := app.NewService(getAppConfig(cCtx), mrAdapter, gitAdapter)
	result, err := service.GetNextVersion(cCtx.String("branch"))
	noRelease := errors.Is(err, app.ErrNoRelease)
	if err != nil && !noRelease {
		return cli.Exit(err.Error(), 2)
	}
	templateString := cCtx.String("output-template")
	if cCtx.Bool("next-version-only") {
		templateString = "{{ .NewVersion }}"
	}
	output, err := service.Render(result, templateString)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Println(output)
	if noRelease {
		return exitCodeIfNoRelease(cCtx)
	}
	return nil
}

func NextVersionMain() {
	cliFlags := newCommonCliFlags()
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "branch",
		Value:   "",
		Usage:   "Branch to filter tags on (empty => all tags)",
		EnvVars: []string{"GMRT_BRANCH_NAME"},
	})
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "tag-regex",
		Value:   "",
		Usage:   "Regex to match tags (if empty string (default) => no filtering)",
		EnvVars: []string{"GMRT_TAG_REGEX"},
	})
	cliFlags = append(cliFlags, &cli.BoolFlag{
		Name:    "next-version-only",
		Value:   false,
		Usage:   "If set, output only the next version (without the old one)",
		EnvVars: []string{"GMRT_NEXT_VERSION_ONLY"},
	})
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "output-template",
		Value:   defaultNextVersionTemplate,
		Usage:   "golang template (with sprig functions) to render the output (fields: ReleaseType, Release, MergeRequest, OldVersion, NewVersion)",
		EnvVars: []string{"GMRT_OUTPUT_TEMPLATE"},
	})
	cliApp := &cli.App{
		Name:      "gitlab-mr-next-version",
		Usage:     "Compute the next semantic version from the latest tag and the merge request labels",
		Action:    nextVersionAction,
		ArgsUsage: "LOCAL_GIT_REPO_PATH",
		Flags:     cliFlags,
	}
	runApp(cliApp)
}
