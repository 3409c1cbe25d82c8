package main

// Render a cover letter prompt from a job posting and resume on disk:
//   go run ./cmd/prompttest -job posting.txt -resume resume.txt -style creative

import (
	"flag"
	"fmt"
	"log"
	"os"

	"easyapply-backend/internal/generate"
	"easyapply-backend/internal/jobs"
)

func main() {
	jobPath := flag.String("job", "", "path to a job posting text file")
	resumePath := flag.String("resume", "", "path to a resume text file")
	style := flag.String("style", "professional", "template style: professional or creative")
	flag.Parse()

	if *jobPath == "" {
		log.Fatal("-job is required")
	}

	jobText, err := os.ReadFile(*jobPath)
	if err != nil {
		log.Fatalf("read job posting: %v", err)
	}

	var resumeText string
	if *resumePath != "" {
		data, err := os.ReadFile(*resumePath)
		if err != nil {
			log.Fatalf("read resume: %v", err)
		}
		resumeText = string(data)
	}

	fields := jobs.ExtractDetails(string(jobText))
	prompt := generate.BuildPrompt(generate.Style(*style).Normalize(), fields, resumeText)
	fmt.Println(prompt)
}
