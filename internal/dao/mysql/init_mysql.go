// Package mysql opens the MySQL connection, migrates the schema and
// exposes the repository aggregate.
package mysql

import (
	"fmt"

	"pulse_chat_server/internal/config"
	"pulse_chat_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init connects to MySQL, runs AutoMigrate for every entity and returns
// the repository set. Fatal on failure: the server cannot run without
// its persistent store.
func Init() *Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	// TranslateError lets repositories detect duplicate-key inserts as
	// gorm.ErrDuplicatedKey instead of driver-specific errors.
	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.L().Fatal("mysql connect failed", zap.Error(err))
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.GroupMembership{},
		&model.Message{},
		&model.Story{},
		&model.StoryView{},
		&model.Contact{},
		&model.BlockedUser{},
		&model.UserSession{},
	)
	if err != nil {
		zap.L().Fatal("mysql migrate failed", zap.Error(err))
	}

	return NewRepositories(db)
}
