package catalog

// Table base names, shared by the embedded data files and override directories
const (
	TableMaterials = "materials"
	TableArmor     = "armor"
	TableCosts     = "costs"
)

// Schema file names inside the embedded schemas directory
const (
	SchemaMaterials = "materials.schema.json"
	SchemaArmor     = "armor.schema.json"
	SchemaCosts     = "costs.schema.json"
)

const (
	embeddedDataDir    = "data"
	embeddedSchemasDir = "schemas"
	sourceEmbedded     = "embedded"
)

// Recognised override file extensions, in lookup order
var overrideExtensions = []string{".json", ".yaml", ".yml"}

// Log messages
const (
	LogMsgCatalogLoaded   = "Catalog loaded"
	LogMsgTableOverridden = "Catalog table overridden"
)
