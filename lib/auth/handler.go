package authhandler

import (
	"recruit-flow-backend/config"
	"recruit-flow-backend/db"
	userstore "recruit-flow-backend/lib/user/store"
	authutils "recruit-flow-backend/lib/utils/auth-utils"
	authapimodels "recruit-flow-backend/models/api/auth"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Provider interface {
	Login(request authapimodels.LoginRequest) (response authapimodels.LoginResponse, err error)
	Register(request authapimodels.RegisterRequest) (userID string, err error)
	Refresh(refreshToken string) (response authapimodels.LoginResponse, err error)
	SubscribePush(userID string, request authapimodels.PushSubscribeRequest) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore: userstore.NewInstance(db.DB),
	}
}

type impl struct {
	userStore userstore.Provider
}

func (i impl) Login(request authapimodels.LoginRequest) (authapimodels.LoginResponse, error) {
	logger := log.WithField("email", request.Email)
	user, err := i.userStore.GetByEmail(request.Email)
	if err != nil {
		logger.WithError(err).Error("failed to find user by email")
		return authapimodels.LoginResponse{}, err
	}
	if user == nil {
		logger.Debug("user with this email not found")
		return authapimodels.LoginResponse{}, errors.New("wrong email or password")
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password))
	if err != nil {
		logger.Debug("password check failed")
		return authapimodels.LoginResponse{}, errors.New("wrong email or password")
	}
	return i.issueTokens(*user)
}

func (i impl) Register(request authapimodels.RegisterRequest) (string, error) {
	logger := log.WithField("email", request.Email)
	exist, err := i.userStore.GetByEmail(request.Email)
	if err != nil {
		logger.WithError(err).Error("failed to check email")
		return "", err
	}
	if exist != nil {
		return "", errors.New("user with this email already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("failed to hash password")
		return "", err
	}
	rec := dbmodels.User{
		Email:        request.Email,
		PasswordHash: string(hash),
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Phone:        request.Phone,
		Role:         request.Role,
	}
	userID, err := i.userStore.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create user")
		return "", err
	}
	logger.WithField("user_id", userID).Info("user registered")
	return userID, nil
}

func (i impl) Refresh(refreshToken string) (authapimodels.LoginResponse, error) {
	claims, err := parseToken(refreshToken)
	if err != nil {
		return authapimodels.LoginResponse{}, errors.New("invalid refresh token")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return authapimodels.LoginResponse{}, errors.New("invalid refresh token")
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to find user by id")
		return authapimodels.LoginResponse{}, err
	}
	if user == nil {
		return authapimodels.LoginResponse{}, errors.New("user not found")
	}
	return i.issueTokens(*user)
}

func (i impl) SubscribePush(userID string, request authapimodels.PushSubscribeRequest) error {
	sub := dbmodels.PushSub{
		Endpoint: request.Endpoint,
		P256dh:   request.P256dh,
		Auth:     request.Auth,
	}
	err := i.userStore.Update(userID, map[string]interface{}{"PushSub": &sub})
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to save push subscription")
		return err
	}
	return nil
}

func (i impl) issueTokens(user dbmodels.User) (authapimodels.LoginResponse, error) {
	token, err := authutils.GetToken(user.ID, user.GetFIO(), user.Role)
	if err != nil {
		log.WithField("user_id", user.ID).WithError(err).Error("failed to generate JWT")
		return authapimodels.LoginResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFIO())
	if err != nil {
		log.WithField("user_id", user.ID).WithError(err).Error("failed to generate refresh JWT")
		return authapimodels.LoginResponse{}, err
	}
	return authapimodels.LoginResponse{
		AccessToken:  token,
		RefreshToken: refresh,
		Role:         user.Role,
	}, nil
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Conf.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
