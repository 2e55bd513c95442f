package uid

import (
	"crypto/rand"
	"math/big"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 IDs using a per-process node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator.
//
// The node number is read from SNOWFLAKE_NODE_ID when set, otherwise a random
// node in [0, 1024) is used. Random nodes are fine for small deployments; set
// the variable explicitly when running more than a handful of replicas.
func NewSnowflake() (*Snowflake, error) {
	var nodeID int64
	if v := os.Getenv("SNOWFLAKE_NODE_ID"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		nodeID = parsed % 1024
	} else {
		n, err := rand.Int(rand.Reader, big.NewInt(1024))
		if err != nil {
			return nil, err
		}
		nodeID = n.Int64()
	}

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new int64 snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
