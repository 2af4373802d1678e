package servicers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/core-tools/hsu-servicers/pkg/errors"
	"github.com/core-tools/hsu-servicers/pkg/logging"
	"github.com/core-tools/hsu-servicers/pkg/serviceconfig"
)

// ServiceRecordSet is the ordered, read-only collection of service descriptors
// loaded from one configuration file
type ServiceRecordSet struct {
	source   string
	services []*serviceconfig.ServiceConfig
}

// Load reads the configuration file named by options and builds one descriptor
// per array element. On any failure no collection is returned.
func Load(options Options, logger logging.Logger) (*ServiceRecordSet, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	logger.Debugf("Loading service records, path: %s, strict: %t", options.Path, options.Strict)

	file, err := os.Open(options.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingConfigurationError("no config", err).WithContext("path", options.Path)
		}
		return nil, errors.NewIOError("failed to open configuration file", err).WithContext("path", options.Path)
	}
	defer file.Close()

	return LoadFromReader(file, options.Path, options.unknownKeyPolicy(), logger)
}

// LoadFromReader decodes a JSON array of service records from r.
// source only labels errors and is reported by Path.
func LoadFromReader(r io.Reader, source string, policy serviceconfig.UnknownKeyPolicy, logger logging.Logger) (*ServiceRecordSet, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIOError("failed to read configuration file", err).WithContext("path", source)
	}

	var document interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, errors.NewMalformedConfigurationError("failed to parse JSON configuration", err).WithContext("path", source)
	}

	elements, ok := document.([]interface{})
	if !ok {
		return nil, errors.NewMalformedConfigurationError(
			fmt.Sprintf("top-level value must be an array, got %s", jsonKind(document)),
			nil,
		).WithContext("path", source)
	}

	services := make([]*serviceconfig.ServiceConfig, 0, len(elements))
	for i, element := range elements {
		record, ok := element.(map[string]interface{})
		if !ok {
			return nil, errors.NewMalformedConfigurationError(
				fmt.Sprintf("service record must be an object, got %s", jsonKind(element)),
				nil,
			).WithContext("path", source).WithContext("index", fmt.Sprintf("%d", i))
		}

		service, err := serviceconfig.FromRecord(record, policy)
		if err != nil {
			domainErr, ok := err.(*errors.DomainError)
			if !ok {
				domainErr = errors.NewMalformedConfigurationError("invalid service record", err)
			}
			domainErr.Message = fmt.Sprintf("invalid service record at index %d", i)
			return nil, domainErr.WithContext("path", source).WithContext("index", fmt.Sprintf("%d", i))
		}

		services = append(services, service)
	}

	logger.Infof("Loaded %d service records from %s", len(services), source)

	return &ServiceRecordSet{
		source:   source,
		services: services,
	}, nil
}

// Path returns where the records were loaded from
func (s *ServiceRecordSet) Path() string {
	return s.source
}

func (s *ServiceRecordSet) Len() int {
	return len(s.services)
}

// At returns a copy of the descriptor at index i
func (s *ServiceRecordSet) At(i int) (*serviceconfig.ServiceConfig, error) {
	if i < 0 || i >= len(s.services) {
		return nil, errors.NewIndexOutOfRangeError(i, len(s.services))
	}
	return s.services[i].Clone(), nil
}

// All returns copies of every descriptor in file order
func (s *ServiceRecordSet) All() []*serviceconfig.ServiceConfig {
	result := make([]*serviceconfig.ServiceConfig, len(s.services))
	for i, service := range s.services {
		result[i] = service.Clone()
	}
	return result
}

// Each calls fn for every descriptor in order and stops at the first error
func (s *ServiceRecordSet) Each(fn func(i int, service *serviceconfig.ServiceConfig) error) error {
	for i, service := range s.services {
		if err := fn(i, service.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func jsonKind(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
