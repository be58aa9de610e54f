// fixtures.go - Sample entity metadata shared by tests
package testutil

import "github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"

// SampleEntities returns a small CRM schema used across tests.
func SampleEntities() []models.Entity {
	return []models.Entity{
		{
			LogicalName:        "account",
			DisplayName:        "Account",
			PrimaryIDAttribute: "accountid",
			Attributes: []models.Attribute{
				{LogicalName: "accountid", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "name", AttributeType: "String"},
				{LogicalName: "revenue", AttributeType: "Money"},
				{LogicalName: "primarycontactid", AttributeType: "Lookup", LookupTarget: "contact"},
			},
		},
		{
			LogicalName:        "contact",
			DisplayName:        "Contact",
			PrimaryIDAttribute: "contactid",
			Attributes: []models.Attribute{
				{LogicalName: "contactid", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "fullname", AttributeType: "String"},
				{LogicalName: "emailaddress1", AttributeType: "String"},
				{LogicalName: "parentcustomerid", AttributeType: "Lookup", LookupTarget: "account"},
			},
		},
		{
			LogicalName:        "opportunity",
			DisplayName:        "Opportunity",
			PrimaryIDAttribute: "opportunityid",
			Attributes: []models.Attribute{
				{LogicalName: "opportunityid", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "topic", AttributeType: "String"},
				{LogicalName: "estimatedvalue", AttributeType: "Money"},
				{LogicalName: "customerid", AttributeType: "Lookup", LookupTarget: "account"},
			},
		},
	}
}

// SampleRelationships returns relationships matching SampleEntities.
func SampleRelationships() []models.EntityRelationship {
	return []models.EntityRelationship{
		{
			SchemaName:           "contact_customer_accounts",
			From:                 "contact",
			To:                   "account",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "parentcustomerid",
			ReferencedAttribute:  "accountid",
		},
		{
			SchemaName:           "opportunity_customer_accounts",
			From:                 "opportunity",
			To:                   "account",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "customerid",
			ReferencedAttribute:  "accountid",
		},
		{
			SchemaName:  "accountleads_association",
			From:        "account",
			To:          "opportunity",
			Cardinality: models.CardinalityManyToMany,
		},
	}
}
