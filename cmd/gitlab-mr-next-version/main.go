package main

import "github.com/fabien-marty/gitlab-mr-release-type/internal/infra/controllers/cli"

func main() {
	cli.NextVersionMain()
}
