// Package tasks holds the message payloads exchanged over Kafka.
package tasks

// ProductIndexTask asks the indexing pipeline to (re)index one product
// into Elasticsearch.
type ProductIndexTask struct {
	CompanyID uint   `json:"company_id"`
	ProductID uint   `json:"product_id"`
	Reason    string `json:"reason"` // created | updated
}
