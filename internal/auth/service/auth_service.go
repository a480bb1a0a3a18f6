package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskboard/backend/internal/common/crypto"
	commonerrors "github.com/taskboard/backend/internal/common/errors"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/observability/metrics"
	"github.com/taskboard/backend/internal/session"
	"github.com/taskboard/backend/internal/store"
	userdomain "github.com/taskboard/backend/internal/user/domain"
)

type AuthService struct {
	store       *store.Store
	hasher      crypto.PasswordHasher
	idGenerator crypto.IDGenerator
	codec       *session.Codec
	log         *logger.Logger
}

func NewAuthService(
	st *store.Store,
	hasher crypto.PasswordHasher,
	idGenerator crypto.IDGenerator,
	codec *session.Codec,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		store:       st,
		hasher:      hasher,
		idGenerator: idGenerator,
		codec:       codec,
		log:         log,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      userdomain.Summary
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateCredentials(input.Username, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return AuthResult{}, err
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		PasswordHash: hash,
	}

	// The uniqueness check and the append run inside the same critical
	// section, so two concurrent registrations of one username cannot both
	// succeed.
	err = s.store.Update(ctx, func(doc *store.Document) error {
		for _, existing := range doc.Users {
			if existing.Username == user.Username {
				return commonerrors.ErrUsernameTaken
			}
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		if errors.Is(err, commonerrors.ErrUsernameTaken) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			return AuthResult{}, err
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, err
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return result, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if err := validateCredentials(input.Username, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return AuthResult{}, err
	}

	var user userdomain.User
	found := false
	err := s.store.View(ctx, func(doc store.Document) error {
		for _, u := range doc.Users {
			if u.Username == input.Username {
				user = u
				found = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, err
	}

	if !found {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_user_not_found",
		}).Warn("login failed: not found")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return AuthResult{}, commonerrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return AuthResult{}, commonerrors.ErrInvalidCredentials
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return result, nil
}

func (s *AuthService) issueSession(ctx context.Context, user userdomain.User) (AuthResult, error) {
	token, expiresAt, err := s.codec.Issue(string(user.ID), user.Username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "token_issue_failed",
		}).Errorf("token issue error: %v", err)
		return AuthResult{}, err
	}

	return AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: userdomain.Summary{
			ID:       user.ID,
			Username: user.Username,
		},
	}, nil
}
