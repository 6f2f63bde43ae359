package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a jobs file.
type fileRoot struct {
	Jobs   []*jobBlock `hcl:"job,block"`
	Remain hcl.Body    `hcl:",remain"`
}

// jobBlock is a single `job "<label>" { ... }` block. The label names the job
// so other blocks can reference it as job.<label>.
type jobBlock struct {
	Label   string         `hcl:"label,label"`
	ID      uint64         `hcl:"id"`
	JobsReq hcl.Expression `hcl:"jobs_req,optional"`
	Remain  hcl.Body       `hcl:",remain"`
}

// parsedJob keeps a decoded block together with the file it came from.
type parsedJob struct {
	file  string
	block *jobBlock
}
