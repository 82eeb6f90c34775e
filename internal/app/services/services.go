package services

// Services defined in this package:
// - AuthService: registration, login, logout and session verification
// - DocumentService: resume uploads, downloads and text extraction
// - JobService: job postings and search
// - ApplicationService: applying to jobs and listing applicants
// - CandidateService: the recruiter's candidate browser
// - MessageService: direct messages and conversation threads
