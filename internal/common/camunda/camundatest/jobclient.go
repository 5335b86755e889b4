// Package camundatest provides an in-memory worker.JobClient that records the
// commands a handler sends.
package camundatest

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// Gateway implements the three job RPCs of pb.GatewayClient. Any other RPC
// panics through the nil embedded interface.
type Gateway struct {
	pb.GatewayClient

	mu        sync.Mutex
	completed []*pb.CompleteJobRequest
	failed    []*pb.FailJobRequest
	thrown    []*pb.ThrowErrorRequest

	// SendErr is returned from every RPC when set. With SendErrTimes above
	// zero only that many calls fail.
	SendErr      error
	SendErrTimes int

	calls int
}

func (g *Gateway) sendErr() error {
	g.calls++
	if g.SendErrTimes > 0 && g.calls > g.SendErrTimes {
		return nil
	}
	return g.SendErr
}

func (g *Gateway) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completed = append(g.completed, in)
	return &pb.CompleteJobResponse{}, g.sendErr()
}

func (g *Gateway) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failed = append(g.failed, in)
	return &pb.FailJobResponse{}, g.sendErr()
}

func (g *Gateway) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.thrown = append(g.thrown, in)
	return &pb.ThrowErrorResponse{}, g.sendErr()
}

// JobClient satisfies worker.JobClient on top of a recording Gateway.
type JobClient struct {
	*Gateway
}

func NewJobClient() *JobClient {
	return &JobClient{Gateway: &Gateway{}}
}

func neverRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.Gateway, neverRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.Gateway, neverRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.Gateway, neverRetry)
}

// Completed returns the complete requests received so far.
func (c *JobClient) Completed() []*pb.CompleteJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.CompleteJobRequest(nil), c.completed...)
}

func (c *JobClient) Failed() []*pb.FailJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.FailJobRequest(nil), c.failed...)
}

func (c *JobClient) Thrown() []*pb.ThrowErrorRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.ThrowErrorRequest(nil), c.thrown...)
}

// CompletedVariables decodes the variables of the last completed job into out.
func (c *JobClient) CompletedVariables(out interface{}) error {
	completed := c.Completed()
	if len(completed) == 0 {
		return errNoCompletion
	}
	return json.Unmarshal([]byte(completed[len(completed)-1].Variables), out)
}

var errNoCompletion = errors.New("no job was completed")

// NewJob builds a job with the given variables, marshalling non-string values.
func NewJob(taskType string, key int64, retries int32, variables interface{}) entities.Job {
	raw, ok := variables.(string)
	if !ok {
		data, err := json.Marshal(variables)
		if err != nil {
			panic(err)
		}
		raw = string(data)
	}
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               taskType,
		Retries:            retries,
		Variables:          raw,
		ProcessInstanceKey: key * 10,
	}}
}
