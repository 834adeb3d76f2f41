// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemauc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/soutside/bookweb/internal/test/fakerepo"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
	"github.com/soutside/bookweb/pkg/core/usecase/schemauc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schemaRepo struct {
	variant model.Variant
	calls   []string
	err     error
}

func (s *schemaRepo) Tx(_ repo.Tx, v model.Variant) (repo.SchemaInitializer, error) {
	s.variant = v
	return s, s.err
}

func (s *schemaRepo) InitDevSchema(context.Context) error {
	s.calls = append(s.calls, "dev")
	return nil
}

func (s *schemaRepo) InitProdSchema(context.Context) error {
	s.calls = append(s.calls, "prod")
	return nil
}

func TestInit(t *testing.T) {
	ctx := context.Background()
	sr := &schemaRepo{}
	p := &fakerepo.Pool{}
	uc := schemauc.New(p, sr, model.VariantTours)
	require.NoError(t, uc.InitDev(ctx))
	require.NoError(t, uc.InitProd(ctx))
	assert.Equal(t, []string{"dev", "prod"}, sr.calls)
	assert.Equal(t, model.VariantTours, sr.variant)
	assert.Equal(t, 2, p.Conns)
}

func TestInitFailure(t *testing.T) {
	boom := errors.New("boom")
	sr := &schemaRepo{err: boom}
	uc := schemauc.New(&fakerepo.Pool{}, sr, model.VariantSupercar)
	err := uc.InitProd(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sr.calls)
}
