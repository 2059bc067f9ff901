package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	machine  int64 = 1
)

// Init configures the snowflake node. Call once at startup; machineID
// must be unique per instance when deployed on multiple machines.
func Init(machineID int64) {
	if machineID < 0 || machineID > 1023 {
		zap.L().Warn("invalid snowflake machine id, using default 1",
			zap.Int64("machineID", machineID))
		machineID = 1
	}
	machine = machineID
	nodeOnce.Do(initNode)
}

func initNode() {
	var err error
	node, err = snowflake.NewNode(machine)
	if err != nil {
		zap.L().Fatal("failed to initialize snowflake node", zap.Error(err))
	}
}

// GenerateID returns a new server-assigned message id.
func GenerateID() int64 {
	nodeOnce.Do(initNode)
	return node.Generate().Int64()
}

// GenerateIDString returns a new id as a decimal string, the form used on
// the wire to avoid JavaScript integer precision loss.
func GenerateIDString() string {
	nodeOnce.Do(initNode)
	return node.Generate().String()
}
