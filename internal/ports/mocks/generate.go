//go:generate mockgen -source=../cache_backend.go    -destination=./mock_cache_backend.go    -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../read_services.go    -destination=./mock_read_services.go    -package=mocks
//go:generate mockgen -source=../write_services.go   -destination=./mock_write_services.go   -package=mocks

package mocks
