package cli

import (
	"fmt"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/git/gitlocal"
	"github.com/urfave/cli/v2"
)

func releaseTypeAction(cCtx *cli.Context) error {
	setDefaultLogger(cCtx)
	gitAdapter := gitlocal.NewAdapter(gitlocal.AdapterOptions{LocalGitPath: "."})
	mrAdapter, err := getMrAdapter(cCtx, gitAdapter)
	if err != nil {
		return err
	}
	service := app.NewService(getAppConfig(cCtx), mrAdapter, nil)
	releaseType, mergeRequest, err := service.GetReleaseType()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	output, err := service.Render(app.NewResult(releaseType, mergeRequest), cCtx.String("output-template"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if output != "" {
		fmt.Println(output)
	}
	if !releaseType.IsRelease() {
		return exitCodeIfNoRelease(cCtx)
	}
	return nil
}

func ReleaseTypeMain() {
	cliFlags := newCommonCliFlags()
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "output-template",
		Value:   app.DefaultOutputTemplate,
		Usage:   "golang template (with sprig functions) to render the output (fields: ReleaseType, Release, MergeRequest)",
		EnvVars: []string{"GMRT_OUTPUT_TEMPLATE"},
	})
	cliApp := &cli.App{
		Name:   "gitlab-mr-release-type",
		Usage:  "Print the release type (major, minor, patch) depending on the merge request labels",
		Action: releaseTypeAction,
		Flags:  cliFlags,
	}
	runApp(cliApp)
}
