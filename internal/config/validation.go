package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/paginate"
)

// ValidateConfig checks the settings the tag page build cannot recover from.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validatePagination(); err != nil {
		return err
	}
	if err := cv.validateCloud(); err != nil {
		return err
	}
	return cv.validatePageTypes()
}

func (cv *configurationValidator) validatePagination() error {
	perPage, enabled := cv.config.PerPage().Get()
	if !enabled {
		return nil
	}
	if perPage <= 0 {
		return ferrors.ConfigError("tags_paginate must be a positive integer").
			WithContext("per_page", perPage).
			WithCause(paginate.ErrInvalidPerPage).
			Build()
	}
	if !paginate.HasPlaceholder(cv.config.TagsPaginatePath) {
		return ferrors.ConfigError("invalid pagination path: it must include "+paginate.Placeholder).
			WithContext("template", cv.config.TagsPaginatePath).
			WithCause(paginate.ErrMissingPlaceholder).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateCloud() error {
	if cv.config.TagCloudBuckets < 1 {
		return ferrors.ConfigError("tag_cloud_buckets must be at least 1").
			WithContext("buckets", cv.config.TagCloudBuckets).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validatePageTypes() error {
	for _, t := range cv.config.PageTypes() {
		if t.Layout == "" {
			continue
		}
		if strings.Contains(t.Dir, "..") {
			return ferrors.ConfigError("tag directory must stay inside the site").
				WithContext("page_type", t.Name).
				WithContext("path", t.Dir).
				Build()
		}
	}
	return nil
}
