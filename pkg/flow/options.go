package flow

import (
	"time"

	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/profile"
)

type options struct {
	logger           *zap.Logger
	now              func() time.Time
	defaultCategory  string
	profileSubmitter Submitter[profile.Profile]
	jobSubmitter     Submitter[jobpost.JobPost]
}

// Option configures a controller.
type Option func(*options)

// WithLogger sets the logger used for step transitions and submissions.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDefaultCategory sets the main category the freelancer category step
// starts on and resets to.
func WithDefaultCategory(category string) Option {
	return func(o *options) {
		o.defaultCategory = category
	}
}

// WithProfileSubmitter sets the collaborator receiving submitted profiles.
func WithProfileSubmitter(s Submitter[profile.Profile]) Option {
	return func(o *options) {
		if s != nil {
			o.profileSubmitter = s
		}
	}
}

// WithJobPostSubmitter sets the collaborator receiving submitted job posts.
func WithJobPostSubmitter(s Submitter[jobpost.JobPost]) Option {
	return func(o *options) {
		if s != nil {
			o.jobSubmitter = s
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.profileSubmitter == nil {
		o.profileSubmitter = LogSubmitter[profile.Profile]{Logger: o.logger, Message: profileSubmittedMessage, Now: o.now}
	}
	if o.jobSubmitter == nil {
		o.jobSubmitter = LogSubmitter[jobpost.JobPost]{Logger: o.logger, Message: jobPostSubmittedMessage, Now: o.now}
	}
	return o
}
