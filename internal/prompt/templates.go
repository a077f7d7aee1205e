package prompt

// SystemPrompt frames the multimodal extraction task for image-bearing
// requests; the page images arrive as content blocks in the user message.
const SystemPrompt = `You are an AI assistant who is expert in extracting information from documents.
Carefully read the document given provided as a collection of images where each image is a document page.
Extract attributes listed below in <attributes></attributes> tags from the document.
The answer must contain the extracted attributes in JSON format. Do NOT include any other information in the answer.
If the attribute has multiple values, provide them as a list in this format: ["value1", "value2", "value3"].
If the attribute requires providing a description or free-form text, the value of the attribute must contain this text.
Note that some attributes are not directly stated in the document, but their values are implicitly defined in the text.
Do your best to extract a full value for each requested attribute from the document.
If provided, you must also follow the additional instructions in <instructions></instructions>.
Think step by step. First, summarize your thoughts in 2-3 sentences using <thinking></thinking> tags. Next, output the JSON in <json></json> tags. Do NOT include any other information in the answer. Remember that the response MUST be a valid JSON file.
`

// extractionHeader opens the text-attribute-extraction family with task
// framing and one worked example.
const extractionHeader = `You are an AI assistant who is expert in extracting information from documents.
Carefully read the document given below in <document></document> tags.
Extract attributes listed below in <attributes></attributes> tags from the document.
The answer must contain the extracted attributes in JSON format. Do NOT include any other information in the answer.
If the attribute has multiple values, provide them as a list in this format: ["value1", "value2", "value3"].
If the attribute requires providing a description or free-form text, the value of the attribute must contain this text.
Note that some attributes are not directly stated in the document, but their values are implicitly defined in the text.
Do your best to extract a full value for each requested attribute from the document.
If provided, you must also follow the additional instructions in <instructions></instructions>.
Think step by step. First, summarize your thoughts in 2-3 sentences using <thinking></thinking> tags. Next, output the JSON in <json></json> tags. Do NOT include any other information in the answer. Remember that the response MUST be a valid JSON file.

Human:
<example>
Document:
<document>
I would like to apologize for the delay in the delivery of the ordered goods. Unfortunately, there was a delay due to a technical problem in our warehouse.
Your order 754263 has now been shipped and you should receive the goods within the next 2-3 business days. I ask for your understanding regarding these inconveniences.
Kind regards,
Nikita Schulz
Customer Service ABC GmbH
</document>

Attributes to be extracted:
<attributes>
1. customer_name: name of the customer who wrote the email
2. shipment_delay_complaint: whether the email is from a customer complaining about shipment delays
3. urgency_score: how soon we should react to the customer email on a scale from 0 to 1
</attributes>

Output:
<thinking>
The document mentions the customer name in the email signature: Nikita Schulz. In the email, the customer is complaining about shipment delays. There are no data points that indicate very high urgency, so I will assign a neutral score of 0.5/
</thinking>
<json>
{{
    "customer_name": "Nikita Schulz",
    "shipment_delay_complaint": true,
    "urgency_score": 0.5
}}
</json>
</example>
`

// extractionTail closes the extraction prompt with the document and
// attribute placeholders.
const extractionTail = `Document:
<document>
{document}
</document>

Attributes to be extracted:
<attributes>
{attributes}
</attributes>

<document_level_instructions_placeholder>

Output:`

// multimodalHeader opens the image-bearing user message; the task framing
// itself travels as the system message, so this only pins down the output
// format with a worked example.
const multimodalHeader = `Extract attributes from the attached images and remember to provide a valid JSON file in the following example format:
<json>
{{
    "customer_name": "Nikita Schulz",
    "shipment_delay_complaint": true,
    "urgency_score": 0.5
}}
</json>

`

// multimodalTail is the extraction tail for image-bearing requests: the
// document travels as image content blocks, so only the attribute list
// remains in the text.
const multimodalTail = `Attributes to be extracted:
<attributes>
{attributes}
</attributes>

<document_level_instructions_placeholder>

Output:`

// extractionFewShot is one worked example block; %s slots receive the
// per-shot placeholder names.
const extractionFewShot = `<example>
Document:
<document>
{%s}
</document>

Attributes to be extracted:
<attributes>
{attributes}
</attributes>

<document_level_instructions_placeholder>

Output:
{%s}
</example>

`

// multimodalFewShot mirrors extractionFewShot for requests whose examples
// were extracted from page images.
const multimodalFewShot = `<example>
<document_text_extracted_from_images>
{%s}
</document_text_extracted_from_images>

Attributes to be extracted:
<attributes>
{attributes}
</attributes>

<document_level_instructions_placeholder>

Output:
{%s}
</example>

`

// instructionsBlock replaces the instructions marker when document-level
// instructions are supplied.
const instructionsBlock = `You must follow these additional instructions:
<instructions>
{instructions}
</instructions>`

// instructionsMarker is removed entirely when instructions are blank so
// the rendered prompt contains no dangling tag.
const instructionsMarker = "<document_level_instructions_placeholder>"

// summaryHeader opens the claim-summary family consumed by the
// aggregation stage over per-document JSON fragments.
const summaryHeader = `You are an AI assistant who is expert of processing car accident insurance claims. Carefully read the documents given below in <document><json></json></document> tags. Your task is analyzing the documents and extracting valuable information to facilitate the claim process. Your goal is to provide a concise summary in JSON format, focusing on four main aspects: car owner information, aggregated car damage details, estimated part cost to fix the car damages and final summarization.

1. **Car Owner Information**: Extract relevant details about the car owner and car details, including their contact information and insurance policy details.
2. **Aggregated Car Damage Parts**: Identify and summarize the damage to the vehicles involved in the accident from multiple photos. Aggregate the damage information from each photo into a unified summary, highlighting all affected parts and the extent of the damage.
3. **Estimated Part Cost**: Provide the estimated price of each part and write the final estimated cost the insurance claim will cover.
4. **Final Conclusion**: Provide a comprehensive conclusion of the accident, focusing on key factors such as the cause, severity, and any additional relevant details. Incorporate the aggregated damage information to present a unified overview of the damage sustained by the vehicles.

Ensure that the extracted data is concentrated on car damage and evidence, omitting any unnecessary comments or information. Your summary should be clear, concise, and structured to facilitate a fair assessment of the accident and streamline the claims process.
`

// summaryFragment wraps one per-document attribute JSON fragment; the %s
// slot receives the fragment placeholder name.
const summaryFragment = `
Document:
<document>
<json>
{%s}
</json>
</document>
`

const summaryTail = `
Output:`
