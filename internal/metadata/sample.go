package metadata

import (
	"context"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// SampleProvider serves a built-in CRM schema. It is the default metadata
// source so the visualizer works out of the box without an exported schema.
type SampleProvider struct{}

var _ Provider = (*SampleProvider)(nil)

// NewSampleProvider creates the built-in schema provider.
func NewSampleProvider() *SampleProvider {
	return &SampleProvider{}
}

// Metadata returns the built-in schema.
func (p *SampleProvider) Metadata(ctx context.Context) ([]models.Entity, []models.EntityRelationship, error) {
	return sampleEntities(), sampleRelationships(), nil
}

func sampleEntities() []models.Entity {
	return []models.Entity{
		{
			LogicalName:        "account",
			DisplayName:        "Account",
			PrimaryIDAttribute: "accountid",
			Attributes: []models.Attribute{
				{LogicalName: "accountid", DisplayName: "Account", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "name", DisplayName: "Account Name", AttributeType: "String"},
				{LogicalName: "accountnumber", DisplayName: "Account Number", AttributeType: "String"},
				{LogicalName: "revenue", DisplayName: "Annual Revenue", AttributeType: "Money"},
				{LogicalName: "industrycode", DisplayName: "Industry", AttributeType: "Picklist"},
				{LogicalName: "primarycontactid", DisplayName: "Primary Contact", AttributeType: "Lookup", LookupTarget: "contact"},
				{LogicalName: "ownerid", DisplayName: "Owner", AttributeType: "Owner", LookupTarget: "systemuser"},
			},
		},
		{
			LogicalName:        "contact",
			DisplayName:        "Contact",
			PrimaryIDAttribute: "contactid",
			Attributes: []models.Attribute{
				{LogicalName: "contactid", DisplayName: "Contact", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "fullname", DisplayName: "Full Name", AttributeType: "String"},
				{LogicalName: "emailaddress1", DisplayName: "Email", AttributeType: "String"},
				{LogicalName: "telephone1", DisplayName: "Business Phone", AttributeType: "String"},
				{LogicalName: "parentcustomerid", DisplayName: "Company Name", AttributeType: "Customer", LookupTarget: "account"},
				{LogicalName: "ownerid", DisplayName: "Owner", AttributeType: "Owner", LookupTarget: "systemuser"},
			},
		},
		{
			LogicalName:        "lead",
			DisplayName:        "Lead",
			PrimaryIDAttribute: "leadid",
			Attributes: []models.Attribute{
				{LogicalName: "leadid", DisplayName: "Lead", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "subject", DisplayName: "Topic", AttributeType: "String"},
				{LogicalName: "firstname", DisplayName: "First Name", AttributeType: "String"},
				{LogicalName: "lastname", DisplayName: "Last Name", AttributeType: "String"},
				{LogicalName: "parentaccountid", DisplayName: "Parent Account", AttributeType: "Lookup", LookupTarget: "account"},
				{LogicalName: "parentcontactid", DisplayName: "Parent Contact", AttributeType: "Lookup", LookupTarget: "contact"},
			},
		},
		{
			LogicalName:        "opportunity",
			DisplayName:        "Opportunity",
			PrimaryIDAttribute: "opportunityid",
			Attributes: []models.Attribute{
				{LogicalName: "opportunityid", DisplayName: "Opportunity", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "name", DisplayName: "Topic", AttributeType: "String"},
				{LogicalName: "estimatedvalue", DisplayName: "Est. Revenue", AttributeType: "Money"},
				{LogicalName: "closeprobability", DisplayName: "Probability", AttributeType: "Integer"},
				{LogicalName: "customerid", DisplayName: "Potential Customer", AttributeType: "Customer", LookupTarget: "account"},
				{LogicalName: "originatingleadid", DisplayName: "Originating Lead", AttributeType: "Lookup", LookupTarget: "lead"},
			},
		},
		{
			LogicalName:        "incident",
			DisplayName:        "Case",
			PrimaryIDAttribute: "incidentid",
			Attributes: []models.Attribute{
				{LogicalName: "incidentid", DisplayName: "Case", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "title", DisplayName: "Case Title", AttributeType: "String"},
				{LogicalName: "ticketnumber", DisplayName: "Case Number", AttributeType: "String"},
				{LogicalName: "customerid", DisplayName: "Customer", AttributeType: "Customer", LookupTarget: "account"},
				{LogicalName: "primarycontactid", DisplayName: "Contact", AttributeType: "Lookup", LookupTarget: "contact"},
			},
		},
		{
			LogicalName:        "systemuser",
			DisplayName:        "User",
			PrimaryIDAttribute: "systemuserid",
			Attributes: []models.Attribute{
				{LogicalName: "systemuserid", DisplayName: "User", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "fullname", DisplayName: "Full Name", AttributeType: "String"},
				{LogicalName: "internalemailaddress", DisplayName: "Primary Email", AttributeType: "String"},
			},
		},
		{
			LogicalName:        "new_project",
			DisplayName:        "Project",
			PrimaryIDAttribute: "new_projectid",
			IsCustom:           true,
			Attributes: []models.Attribute{
				{LogicalName: "new_projectid", DisplayName: "Project", AttributeType: "Uniqueidentifier", IsPrimaryID: true},
				{LogicalName: "new_name", DisplayName: "Project Name", AttributeType: "String"},
				{LogicalName: "new_accountid", DisplayName: "Account", AttributeType: "Lookup", LookupTarget: "account"},
			},
		},
	}
}

func sampleRelationships() []models.EntityRelationship {
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
			SchemaName:           "account_primary_contact",
			From:                 "account",
			To:                   "contact",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "primarycontactid",
			ReferencedAttribute:  "contactid",
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
			SchemaName:           "opportunity_originating_lead",
			From:                 "opportunity",
			To:                   "lead",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "originatingleadid",
			ReferencedAttribute:  "leadid",
		},
		{
			SchemaName:           "incident_customer_accounts",
			From:                 "incident",
			To:                   "account",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "customerid",
			ReferencedAttribute:  "accountid",
		},
		{
			SchemaName:           "incident_primary_contact",
			From:                 "incident",
			To:                   "contact",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "primarycontactid",
			ReferencedAttribute:  "contactid",
		},
		{
			SchemaName:           "lead_parent_account",
			From:                 "lead",
			To:                   "account",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "parentaccountid",
			ReferencedAttribute:  "accountid",
		},
		{
			SchemaName:           "new_project_account",
			From:                 "new_project",
			To:                   "account",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "new_accountid",
			ReferencedAttribute:  "accountid",
		},
		{
			SchemaName:  "accountleads_association",
			From:        "account",
			To:          "lead",
			Cardinality: models.CardinalityManyToMany,
		},
		{
			SchemaName:           "user_accounts",
			From:                 "account",
			To:                   "systemuser",
			Cardinality:          models.CardinalityManyToOne,
			ReferencingAttribute: "ownerid",
			ReferencedAttribute:  "systemuserid",
		},
	}
}
