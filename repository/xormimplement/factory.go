package xormimplement

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"xorm.io/xorm"

	_ "github.com/lib/pq"

	"github.com/AmineMekki01/rag-app-prod-example/config"
	"github.com/AmineMekki01/rag-app-prod-example/repository"
	"github.com/AmineMekki01/rag-app-prod-example/repository/factory"
	"github.com/AmineMekki01/rag-app-prod-example/repository/interfaces"
)

type Factory struct {
	engine *xorm.Engine
}

// NewRepositoryFactory connects to postgres with the configured xorm
// settings. Called once at startup; the factory is shared afterwards.
func NewRepositoryFactory() factory.Factory {
	return &Factory{
		engine: openDB(
			config.GetInstance().GetString(config.BaseDbXormType),
			config.GetInstance().GetString(config.BaseDbXormHost),
			config.GetInstance().GetString(config.BaseDbXormPort),
			config.GetInstance().GetString(config.BaseDbXormUsername),
			config.GetInstance().GetString(config.BaseDbXormName),
			config.GetInstance().GetString(config.BaseDbXormPassword),
			config.GetInstance().GetBool(config.BaseDbXormShowsql),
		),
	}
}

func openDB(dbType string, host string, port string, userName string, name string, password string, showSql bool) *xorm.Engine {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host,
		userName,
		password,
		name,
		port)

	engine, err := xorm.NewEngine(dbType, dsn)
	if err != nil {
		logrus.Errorf("Database connection failed err: %v. Database name: %s", err, name)
		panic(err)
	}

	engine.ShowSQL(showSql)
	return engine
}

func (f *Factory) NewSession(ctx context.Context) interfaces.Session {
	return &Session{Session: f.engine.NewSession().Context(ctx)}
}

func (f *Factory) NewMessageRepository(session interfaces.Session) (repository.MessageRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewMessageRepository(s), nil
	}
	return nil, fmt.Errorf("failed to unwrap xorm session")
}

func (f *Factory) NewChatRepository(session interfaces.Session) (repository.ChatRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewChatRepository(s), nil
	}
	return nil, fmt.Errorf("failed to unwrap xorm session")
}
