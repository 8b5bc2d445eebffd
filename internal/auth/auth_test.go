package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
)

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role    auth.Role
		allowed []auth.Capability
		denied  []auth.Capability
	}{
		{
			role:    auth.RoleAdmin,
			allowed: []auth.Capability{auth.CapAdmin, auth.CapPOS, auth.CapPurchases},
		},
		{
			role:    auth.RoleManager,
			allowed: []auth.Capability{auth.CapFinancial, auth.CapStock, auth.CapEmployees},
			denied:  []auth.Capability{auth.CapAdmin},
		},
		{
			role:    auth.RoleReceptionist,
			allowed: []auth.Capability{auth.CapReceptive, auth.CapTours},
			denied:  []auth.Capability{auth.CapPOS, auth.CapStock},
		},
		{
			role:    auth.RoleWaiter,
			allowed: []auth.Capability{auth.CapRestaurant, auth.CapBar},
			denied:  []auth.Capability{auth.CapPOS},
		},
		{
			role:    auth.RoleBartender,
			allowed: []auth.Capability{auth.CapBar},
			denied:  []auth.Capability{auth.CapRestaurant},
		},
		{
			role:    auth.RoleCashier,
			allowed: []auth.Capability{auth.CapPOS, auth.CapRestaurant, auth.CapBar},
			denied:  []auth.Capability{auth.CapFinancial},
		},
		{
			role:   auth.Role("intern"),
			denied: []auth.Capability{auth.CapBar},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			a := auth.NewActor(uuid.New(), "someone", tt.role)

			for _, c := range tt.allowed {
				assert.True(t, a.Can(c), "expected %s to have %s", tt.role, c)
			}

			for _, c := range tt.denied {
				assert.False(t, a.Can(c), "expected %s to lack %s", tt.role, c)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	waiter := auth.NewActor(uuid.New(), "Ana", auth.RoleWaiter)

	type testCase struct {
		name    string
		ctx     context.Context
		caps    []auth.Capability
		wantErr error
	}

	tests := []testCase{
		{
			name:    "NoActor",
			ctx:     context.Background(),
			caps:    []auth.Capability{auth.CapBar},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:    "NilEmployee",
			ctx:     auth.WithActor(context.Background(), auth.Actor{Role: auth.RoleAdmin}),
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:    "Forbidden",
			ctx:     auth.WithActor(context.Background(), waiter),
			caps:    []auth.Capability{auth.CapPOS, auth.CapStock},
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "AnyOfMatches",
			ctx:  auth.WithActor(context.Background(), waiter),
			caps: []auth.Capability{auth.CapPOS, auth.CapRestaurant},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Require(tt.ctx, tt.caps...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, waiter.EmployeeID, got.EmployeeID)
		})
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	actor := auth.NewActor(uuid.New(), "Bia", auth.RoleCashier)

	signed, expiresAt, err := tokens.Issue(actor)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestTokenManager_Rejects(t *testing.T) {
	actor := auth.NewActor(uuid.New(), "Bia", auth.RoleCashier)

	expired, _, err := auth.NewTokenManager("secret", -time.Minute).Issue(actor)
	require.NoError(t, err)

	foreign, _, err := auth.NewTokenManager("other-secret", time.Hour).Issue(actor)
	require.NoError(t, err)

	tokens := auth.NewTokenManager("secret", time.Hour)

	for name, tok := range map[string]string{
		"expired": expired,
		"foreign": foreign,
		"garbage": "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Parse(tok)
			assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	employee := &auth.Employee{
		ID:           uuid.New(),
		Username:     "caixa1",
		FullName:     "Carla Caixa",
		Role:         auth.RoleCashier,
		PasswordHash: string(hash),
		Active:       true,
	}

	type args struct {
		params auth.LoginParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *auth.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: auth.LoginParams{Login: "caixa1", Password: "hunter2"}},
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().FindByLogin(gomock.Any(), "caixa1").Return(employee, nil)
			},
		},
		{
			name: "WrongPassword",
			args: args{params: auth.LoginParams{Login: "caixa1", Password: "nope"}},
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().FindByLogin(gomock.Any(), "caixa1").Return(employee, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name: "UnknownUser",
			args: args{params: auth.LoginParams{Login: "ghost", Password: "x"}},
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().FindByLogin(gomock.Any(), "ghost").Return(nil, apperr.NotFound("employee"))
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name: "Inactive",
			args: args{params: auth.LoginParams{Login: "old", Password: "hunter2"}},
			setupMock: func(m *auth.MockRepository) {
				inactive := *employee
				inactive.Active = false
				m.EXPECT().FindByLogin(gomock.Any(), "old").Return(&inactive, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:    "MissingFields",
			args:    args{params: auth.LoginParams{}},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			tokens := auth.NewTokenManager("secret", time.Hour)
			svc := auth.NewService(repo, tokens)

			session, err := svc.Login(context.Background(), tt.args.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, employee.ID, session.Actor.EmployeeID)
			assert.True(t, session.Actor.Can(auth.CapPOS))

			actor, err := svc.Authenticate(session.Token)
			require.NoError(t, err)
			assert.Equal(t, session.Actor, actor)
		})
	}
}
