// Package schemasync registers keyspaces and tables from declarative model
// definitions, the way a sync command walks an application's models once at
// setup time. Definitions live in a YAML file:
//
//	keyspaces:
//	  - name: fake
//	    tables:
//	      - name: users
//	        columns:
//	          - {name: username, type: text, key: partition}
//	          - {name: company, type: int, key: clustering}
//	          - {name: height, db_field: user_height, type: double}
//	          - {name: skills, type: list<text>}
//	          - {name: skill_matrix, type: "map<text,int>"}
//	          - {name: assignments, type: set<text>, required: true}
//
// Re-running a sync re-creates each named keyspace from scratch, which is
// what test-suite resets rely on.
package schemasync

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
	"github.com/andreyvolosyuk/cassandra-fake/internal/store"
)

type Syncer struct {
	registry *store.Registry
	logger   zerolog.Logger
}

type Config struct {
	Registry *store.Registry
	// Logger is optional; a disabled logger is used when nil.
	Logger *zerolog.Logger
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Registry == nil {
		errGrp = append(errGrp, errors.New("registry is required"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Syncer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Syncer{
		registry: cfg.Registry,
		logger:   logger,
	}, nil
}

type fileSchema struct {
	Keyspaces []keyspaceDef `yaml:"keyspaces"`
}

type keyspaceDef struct {
	Name   string     `yaml:"name"`
	Tables []tableDef `yaml:"tables"`
}

type tableDef struct {
	Name    string      `yaml:"name"`
	Columns []columnDef `yaml:"columns"`
}

type columnDef struct {
	Name     string `yaml:"name"`
	DBField  string `yaml:"db_field"`
	Type     string `yaml:"type"`
	Key      string `yaml:"key"`
	Required bool   `yaml:"required"`
}

// Sync loads model definitions from a YAML file and registers them. It
// returns one model per table, ready to bind statements against.
func (s *Syncer) Sync(path string) ([]cassandra.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return s.Load(data)
}

// Load registers model definitions from raw YAML. Each named keyspace is
// re-created, dropping whatever it held before.
func (s *Syncer) Load(data []byte) ([]cassandra.Model, error) {
	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	var models []cassandra.Model
	for _, ks := range schema.Keyspaces {
		if ks.Name == "" {
			return nil, errors.New("keyspace name is required")
		}
		s.registry.CreateKeyspace(ks.Name)

		for _, tbl := range ks.Tables {
			columns, err := tableColumns(tbl)
			if err != nil {
				return nil, fmt.Errorf("table %s.%s: %w", ks.Name, tbl.Name, err)
			}
			if _, err := s.registry.AddTable(ks.Name, tbl.Name, columns); err != nil {
				return nil, err
			}
			s.logger.Debug().Str("keyspace", ks.Name).Str("table", tbl.Name).Msg("synced model")

			models = append(models, cassandra.Model{
				Keyspace: ks.Name,
				Table:    tbl.Name,
				Columns:  columns,
			})
		}
	}
	return models, nil
}

func tableColumns(tbl tableDef) ([]cassandra.Column, error) {
	if tbl.Name == "" {
		return nil, errors.New("table name is required")
	}
	if len(tbl.Columns) == 0 {
		return nil, errors.New("at least one column is required")
	}

	columns := make([]cassandra.Column, 0, len(tbl.Columns))
	for _, def := range tbl.Columns {
		if def.Name == "" {
			return nil, errors.New("column name is required")
		}
		kind, keyType, valType, err := parseType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", def.Name, err)
		}
		role, err := parseKeyRole(def.Key)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", def.Name, err)
		}
		columns = append(columns, cassandra.Column{
			Name:     def.Name,
			DBField:  def.DBField,
			Kind:     kind,
			Type:     valType,
			KeyType:  keyType,
			Key:      role,
			Required: def.Required,
		})
	}
	return columns, nil
}

var scalarTypes = map[string]cassandra.Type{
	"text":      cassandra.TypeText,
	"int":       cassandra.TypeInt,
	"bigint":    cassandra.TypeBigInt,
	"double":    cassandra.TypeDouble,
	"boolean":   cassandra.TypeBoolean,
	"uuid":      cassandra.TypeUUID,
	"timestamp": cassandra.TypeTimestamp,
	"date":      cassandra.TypeDate,
	"blob":      cassandra.TypeBlob,
}

// parseType reads a type declaration: a scalar name, list<elem>, set<elem>
// or map<key,value>. Container elements must be scalars.
func parseType(spec string) (cassandra.Kind, cassandra.Type, cassandra.Type, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, 0, errors.New("column type is required")
	}

	if t, ok := scalarTypes[spec]; ok {
		return cassandra.KindScalar, 0, t, nil
	}

	open := strings.IndexByte(spec, '<')
	if open < 0 || !strings.HasSuffix(spec, ">") {
		return 0, 0, 0, fmt.Errorf("unknown column type %q", spec)
	}
	outer, inner := spec[:open], spec[open+1:len(spec)-1]

	switch outer {
	case "list", "set":
		elem, ok := scalarTypes[strings.TrimSpace(inner)]
		if !ok {
			return 0, 0, 0, fmt.Errorf("unknown element type %q", inner)
		}
		kind := cassandra.KindList
		if outer == "set" {
			kind = cassandra.KindSet
		}
		return kind, 0, elem, nil
	case "map":
		keySpec, valSpec, ok := strings.Cut(inner, ",")
		if !ok {
			return 0, 0, 0, fmt.Errorf("map type needs key and value: %q", spec)
		}
		keyType, ok := scalarTypes[strings.TrimSpace(keySpec)]
		if !ok {
			return 0, 0, 0, fmt.Errorf("unknown key type %q", keySpec)
		}
		valType, ok := scalarTypes[strings.TrimSpace(valSpec)]
		if !ok {
			return 0, 0, 0, fmt.Errorf("unknown value type %q", valSpec)
		}
		return cassandra.KindMap, keyType, valType, nil
	default:
		return 0, 0, 0, fmt.Errorf("unknown column type %q", spec)
	}
}

func parseKeyRole(role string) (cassandra.KeyRole, error) {
	switch role {
	case "", "none":
		return cassandra.KeyNone, nil
	case "partition":
		return cassandra.KeyPartition, nil
	case "clustering":
		return cassandra.KeyClustering, nil
	default:
		return 0, fmt.Errorf("unknown key role %q", role)
	}
}
