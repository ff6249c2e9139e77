package pipeline

import (
	"fmt"
	"regexp"

	"jobradar/pkg/models"
	"jobradar/pkg/sites"
)

// NormalizeQuestion turns a question-site candidate into a normalized
// record. A candidate with no text left after cleaning is dropped silently
// (nil, nil) -- it is a candidate being discarded, not a request failing.
func NormalizeQuestion(c models.Candidate, req models.CrawlRequest, companyPattern *regexp.Regexp) (*models.InterviewQuestion, error) {
	text := CleanText(c.RawText)
	if text == "" {
		return nil, nil
	}

	if !IsRelevant(text, req) {
		return nil, nil
	}

	return &models.InterviewQuestion{
		ID:         BuildID(text, c.SourceSite),
		Question:   text,
		Category:   req.Category,
		Difficulty: ClassifyDifficulty(text),
		Type:       ClassifyType(text),
		Company:    ExtractCompany(c.RawText, companyPattern),
		Tags:       ExtractTags(text),
		SourceURL:  c.SourceURL,
		SourceSite: c.SourceSite,
		CrawledAt:  c.ExtractedAt,
	}, nil
}

// NormalizeJob turns a job-board candidate into a normalized record. A card
// without a title is structurally broken markup, which is a parse failure on
// that field rather than a silent drop.
func NormalizeJob(c models.Candidate, req models.CrawlRequest) (*models.JobPosition, error) {
	text := CleanText(c.RawText)
	if text == "" {
		return nil, nil
	}

	if !IsRelevant(text, req) {
		return nil, nil
	}

	title := CleanText(c.Fields[sites.FieldTitle])
	if title == "" {
		return nil, models.NewParseError(c.SourceSite, sites.FieldTitle, fmt.Errorf("job card has no title"))
	}

	company := CleanText(c.Fields[sites.FieldCompany])
	if company == "" {
		company = UnknownCompany
	}

	return &models.JobPosition{
		ID:         BuildID(title+" "+company, c.SourceSite),
		Title:      title,
		Company:    company,
		Location:   CleanText(c.Fields[sites.FieldLocation]),
		Salary:     CleanText(c.Fields[sites.FieldSalary]),
		Experience: CleanText(c.Fields[sites.FieldExperience]),
		Category:   req.Category,
		Tags:       ExtractTags(text),
		SourceURL:  c.SourceURL,
		SourceSite: c.SourceSite,
		CrawledAt:  c.ExtractedAt,
	}, nil
}
