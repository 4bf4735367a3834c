// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SourceSuffix marks files taken as diagram sources.
	SourceSuffix = ".mmd"
	// TargetSuffix replaces SourceSuffix in output names.
	TargetSuffix = ".pdf"
)

// JobStatus is the outcome of a single render job.
type JobStatus string

const (
	StatusRendered JobStatus = "rendered"
	StatusFailed   JobStatus = "failed"
)

// Job pairs one diagram source with its output path.
type Job struct {
	SourcePath string
	OutputPath string
}

// JobResult records how one job ended.
type JobResult struct {
	Job
	Status JobStatus
	Err    error
}

// BatchResult holds the outcome of a batch render run.
type BatchResult struct {
	Jobs     []JobResult
	Rendered int
	Failed   int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Failed
}

// HasFailures reports whether any files failed to render.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DeriveOutput maps a source path to its output path by replacing the
// trailing source suffix. Only the final suffix changes; dots elsewhere in
// the name are left alone.
func DeriveOutput(src string) string {
	return strings.TrimSuffix(src, SourceSuffix) + TargetSuffix
}

// Jobs lists the render jobs for dir: every regular entry whose name ends in
// the source suffix, in directory order. Subdirectories are not descended
// into.
func Jobs(dir string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var jobs []Job
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SourceSuffix) {
			continue
		}
		src := filepath.Join(dir, e.Name())
		jobs = append(jobs, Job{SourcePath: src, OutputPath: DeriveOutput(src)})
	}
	return jobs, nil
}

// ConvertJob renders a single job, printing its status to w.
func ConvertJob(r Renderer, job Job, w io.Writer) JobResult {
	fmt.Fprintf(w, "render: %s -> %s\n", job.SourcePath, job.OutputPath)
	if err := r.Render(job.SourcePath, job.OutputPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", job.SourcePath, err)
		return JobResult{Job: job, Status: StatusFailed, Err: err}
	}
	return JobResult{Job: job, Status: StatusRendered}
}

// ConvertBatch renders the jobs in order, printing per-file status to w and
// returning a summary. A failed file never stops the batch; the remaining
// jobs still run.
func ConvertBatch(r Renderer, jobs []Job, w io.Writer) BatchResult {
	var result BatchResult
	for _, job := range jobs {
		jr := ConvertJob(r, job, w)
		result.Jobs = append(result.Jobs, jr)
		switch jr.Status {
		case StatusRendered:
			result.Rendered++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d rendered, %d failed (total: %d)\n",
		result.Rendered, result.Failed, result.Total())
	return result
}

// ConvertDir enumerates dir and renders every diagram source in it. The only
// error it returns is a failure to read the directory itself; per-file
// render failures are reported in the result.
func ConvertDir(r Renderer, dir string, w io.Writer) (BatchResult, error) {
	jobs, err := Jobs(dir)
	if err != nil {
		return BatchResult{}, err
	}
	return ConvertBatch(r, jobs, w), nil
}
