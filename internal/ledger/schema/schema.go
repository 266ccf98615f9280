package schema

import (
	"embed"
	"fmt"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
)

//go:embed abi/*.json
var abiFS embed.FS

// Contract names of the lifecycle ledger
const (
	ContractRawBatch     = "raw-batch"
	ContractProductBatch = "product-batch"
	ContractRecycling    = "recycling"
)

// Contracts lists every embedded contract schema
var Contracts = []string{ContractRawBatch, ContractProductBatch, ContractRecycling}

// Mutability is the declared state mutability of a function
type Mutability string

const (
	MutabilityPure       Mutability = "pure"
	MutabilityView       Mutability = "view"
	MutabilityNonPayable Mutability = "nonpayable"
	MutabilityPayable    Mutability = "payable"
)

// Method is the schema of one contract function
type Method struct {
	Name       string
	Inputs     []codec.Param
	Outputs    []codec.Param
	Mutability Mutability
}

// ReadOnly reports whether the method can be invoked without a transaction
func (m Method) ReadOnly() bool {
	return m.Mutability == MutabilityView || m.Mutability == MutabilityPure
}

// Event is the schema of one contract event
type Event struct {
	Name      string
	Inputs    []codec.Param
	Anonymous bool
	ID        common.Hash
}

// Contract is a parsed contract schema bound to its deployed address
type Contract struct {
	Name    string
	Address common.Address
	ABI     abi.ABI

	methods map[string]Method
	events  map[string]Event
}

// Parse parses a contract ABI document
func Parse(name string, r io.Reader, address common.Address) (*Contract, error) {
	parsed, err := abi.JSON(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi for %s: %w", name, err)
	}

	c := &Contract{
		Name:    name,
		Address: address,
		ABI:     parsed,
		methods: make(map[string]Method, len(parsed.Methods)),
		events:  make(map[string]Event, len(parsed.Events)),
	}

	for methodName, m := range parsed.Methods {
		inputs, err := codec.ParamsFromABI(m.Inputs)
		if err != nil {
			return nil, fmt.Errorf("%s.%s inputs: %w", name, methodName, err)
		}
		outputs, err := codec.ParamsFromABI(m.Outputs)
		if err != nil {
			return nil, fmt.Errorf("%s.%s outputs: %w", name, methodName, err)
		}
		c.methods[methodName] = Method{
			Name:       methodName,
			Inputs:     inputs,
			Outputs:    outputs,
			Mutability: Mutability(m.StateMutability),
		}
	}

	for eventName, e := range parsed.Events {
		inputs, err := codec.ParamsFromABI(e.Inputs)
		if err != nil {
			return nil, fmt.Errorf("%s.%s event: %w", name, eventName, err)
		}
		c.events[eventName] = Event{
			Name:      eventName,
			Inputs:    inputs,
			Anonymous: e.Anonymous,
			ID:        e.ID,
		}
	}

	return c, nil
}

// Method returns the named function schema.
// A method absent from the schema is a programming error and reported as internal.
func (c *Contract) Method(name string) (Method, error) {
	m, ok := c.methods[name]
	if !ok {
		return Method{}, domain.NewInternalError("schema lookup",
			fmt.Errorf("method %s not declared by contract %s", name, c.Name))
	}
	return m, nil
}

// Event returns the named event schema
func (c *Contract) Event(name string) (Event, bool) {
	e, ok := c.events[name]
	return e, ok
}

// MethodNames returns the declared function names, sorted
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for n := range c.methods {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Registry holds the parsed schemas of every lifecycle contract
type Registry struct {
	contracts map[string]*Contract
}

// Load parses the embedded contract schemas and binds them to the given addresses.
// Every embedded contract must have an address.
func Load(addresses map[string]common.Address) (*Registry, error) {
	r := &Registry{contracts: make(map[string]*Contract, len(Contracts))}

	for _, name := range Contracts {
		address, ok := addresses[name]
		if !ok {
			return nil, fmt.Errorf("no address configured for contract %s", name)
		}

		f, err := abiFS.Open("abi/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to open abi for %s: %w", name, err)
		}
		c, err := Parse(name, f, address)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		r.contracts[name] = c
	}

	return r, nil
}

// Contract returns the named contract schema
func (r *Registry) Contract(name string) (*Contract, error) {
	c, ok := r.contracts[name]
	if !ok {
		return nil, domain.NewInternalError("schema lookup", fmt.Errorf("unknown contract %s", name))
	}
	return c, nil
}

// ContractFor returns the contract holding entities of the given stage
func (r *Registry) ContractFor(stage domain.Stage) (*Contract, error) {
	switch stage {
	case domain.StageRaw, domain.StageSold:
		return r.Contract(ContractRawBatch)
	case domain.StageProduct:
		return r.Contract(ContractProductBatch)
	case domain.StageWaste, domain.StageRecycled:
		return r.Contract(ContractRecycling)
	default:
		return nil, domain.NewInternalError("schema lookup", fmt.Errorf("no contract for stage %s", stage))
	}
}
